package config

import (
	"errors"
	"path/filepath"
	"reflect"
	"strings"

	"genedb/core/build"
	"genedb/core/database"
	"genedb/core/logger"
	"genedb/core/server"
	"genedb/core/storage"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ManifestName is the config file (without extension) holding the genome list.
const ManifestName = "genedb"

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Build holds the reconciliation and output settings.
	Build build.Config `mapstructure:"build"`
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Storage holds configuration for the object storage used to publish outputs.
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the run history database.
	Database database.Config `mapstructure:"database"`
	// Genomes is the manifest read from genedb.yaml.
	Genomes []build.Genome `mapstructure:"genomes"`
}

// LoadConfig loads configuration from environment variables, a .env file and
// an optional genedb.yaml manifest in path.
func LoadConfig(path string) (*Config, error) {
	// 1. Load .env file if it exists
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. BUILD_MATCH_THRESHOLD -> build.match_threshold)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 2. Genome manifest, optional
	v.SetConfigName(ManifestName)
	v.AddConfigPath(path)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	// Manifest paths are relative to the manifest itself
	if used := v.ConfigFileUsed(); used != "" {
		base := filepath.Dir(used)
		for i := range config.Genomes {
			config.Genomes[i] = resolve(base, config.Genomes[i])
		}
	}

	return &config, nil
}

func resolve(base string, g build.Genome) build.Genome {
	abs := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(base, p)
	}
	g.Annotation = abs(g.Annotation)
	g.Sequences = abs(g.Sequences)
	g.Assembly = abs(g.Assembly)
	return g
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	// If it's a pointer, get the element
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		// Skip if no tag
		if tag == "" {
			continue
		}

		// Build the key
		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		switch field.Type.Kind() {
		case reflect.Struct:
			// If it's a nested struct, recurse
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		case reflect.Slice:
			// Lists come from the manifest only
			continue
		}

		defaultValue := field.Tag.Get("default")
		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, defaultValue)
	}
}
