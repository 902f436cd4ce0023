/*
Package tree formats, walks and exports parse trees.

Parse trees produced by the bottom-up parser are plain trees of bottomup.Node.
This package offers

■ an indented, bracketed outline of a tree (Render), suitable for pasting into
LaTeX tree packages like 'forest' or 'qtree',

■ a top-down walk over a tree, calling back a Listener (Walk),

■ export to the Graphviz dot format (ToGraphViz),

■ a digest of a tree's structure (Fingerprint), handy for comparing trees
across runs.

Rendering

For the tree S(NP(N(John)),VP(V(runs))), Render produces

    [ S
      [ NP
        [ N
          [ John ]
        ]
      ]
      [ VP
        [ V
          [ runs ]
        ]
      ]
    ]

The result has no trailing newline.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package tree

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'bottomup.tree'.
func tracer() tracing.Trace {
	return tracing.Select("bottomup.tree")
}
