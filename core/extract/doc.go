// Package extract builds gene sequences straight from a genome assembly using
// annotation coordinates. It is the fallback when a genome ships no usable
// sequence file.
package extract
