/*
Command bupl provides an interactive command line tool (B.U.P.L.) for
experiments with the exhaustive bottom-up parser. It reads a grammar
from a file in grammar notation (see package grammar), or uses a small,
heavily ambiguous demo grammar for English sentences, and prints every
parse for each line of input.

Usage:

    bupl [flags] [tokens …]

If tokens are given on the command line, bupl parses them and exits. Otherwise
it enters interactive mode, parsing every line entered. Lines starting with a colon
are commands:

    :rules            print the grammar
    :format <fmt>     switch output format to bracket, canon, tree or dot
    :stats            print statistics of the last parse
    :quit             leave bupl

Flags are:

    -trace <level>    trace level [Debug|Info|Error]
    -grammar <file>   grammar file (default: demo grammar)
    -maxgen <n>       maximum number of search generations (0 = unbounded)
    -maxstates <n>    maximum number of sentential forms to explore (0 = unbounded)
    -unique           suppress parses with identical structure
    -indent <n>       indentation for bracket format
    -format <fmt>     output format: bracket, canon, tree or dot
    -go               split input into Go-like tokens instead of words

Interrupting a running parse with <ctrl>C will return the parses found so far.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'bottomup.cli'
func tracer() tracing.Trace {
	return tracing.Select("bottomup.cli")
}
