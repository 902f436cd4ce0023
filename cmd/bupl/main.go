package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/bottomup"
	"github.com/npillmayer/bottomup/grammar"
	"github.com/npillmayer/bottomup/scanner"
	"github.com/npillmayer/bottomup/scanner/lexmach"
	"github.com/npillmayer/bottomup/search"
	"github.com/npillmayer/bottomup/tree"
	"github.com/pterm/pterm"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
)

// We provide a small grammar for English sentences as a default. It is
// ambiguous with respect to prepositional phrases and conjunctions:
//
//    John sees the man with a telescope
//
// has two parses.
const demoGrammar = `
S   -> NP VP | S and S
NP  -> PN | Det N | NP PP
VP  -> V_T NP | VP PP
PP  -> P NP
PN  -> John | Mary
Det -> the | a
N   -> man | telescope
V_T -> loves | sees
P   -> with
`

// Output formats
const (
	formatBracket = "bracket"
	formatCanon   = "canon"
	formatTree    = "tree"
	formatDot     = "dot"
)

func main() {
	// set up logging
	initDisplay()
	gtrace.SyntaxTracer = gologadapter.New()
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	gfile := flag.String("grammar", "", "Grammar file (default: demo grammar)")
	maxgen := flag.Int("maxgen", 0, "Maximum number of search generations (0 = unbounded)")
	maxstates := flag.Int("maxstates", 0, "Maximum number of sentential forms (0 = unbounded)")
	unique := flag.Bool("unique", false, "Suppress structurally identical parses")
	indent := flag.Int("indent", 2, "Indentation for bracket format")
	format := flag.String("format", formatBracket, "Output format [bracket|canon|tree|dot]")
	gotok := flag.Bool("go", false, "Split input into Go-like tokens instead of words")
	flag.Parse()
	tracer().SetTraceLevel(tracing.LevelInfo) // will set the correct level later
	pterm.Info.Println("Welcome to B.U.P.L.") // colored welcome message
	tracer().Infof("Trace level is %s", *tlevel)
	//
	g, err := loadGrammar(*gfile)
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(2)
	}
	setTraceLevel(tracing.TraceLevelFromString(*tlevel)) // now set the user supplied level
	g.Dump()                                             // only visible in debug mode
	opts := []search.Option{search.UniqueParses(*unique)}
	if *maxgen > 0 {
		opts = append(opts, search.MaxGenerations(*maxgen))
	}
	if *maxstates > 0 {
		opts = append(opts, search.MaxStates(*maxstates))
	}
	intp := &Intp{
		G:      g,
		parser: search.NewParser(g.Rules(), opts...),
		format: *format,
		indent: *indent,
		gotok:  *gotok,
	}
	defer intp.parser.Close()
	if !validFormat(intp.format) {
		pterm.Error.Printf("Unknown output format %q\n", intp.format)
		os.Exit(2)
	}
	input := strings.TrimSpace(strings.Join(flag.Args(), " "))
	if input != "" {
		tracer().Infof("Input argument is \"%s\"", input)
		if err := intp.Eval(input); err != nil {
			os.Exit(1)
		}
		return
	}
	//
	// set up REPL
	repl, err := readline.New("bupl> ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	defer repl.Close()
	intp.repl = repl
	tracer().Infof("Quit with <ctrl>D") // inform user how to stop the CLI
	intp.REPL()                         // go into interactive mode
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

func setTraceLevel(level tracing.TraceLevel) {
	for _, key := range []string{"bottomup.cli", "bottomup.parse", "bottomup.grammar",
		"bottomup.scanner", "bottomup.tree"} {
		tracing.Select(key).SetTraceLevel(level)
	}
}

func loadGrammar(filename string) (*grammar.Grammar, error) {
	if filename == "" {
		tracer().Infof("Using demo grammar")
		return grammar.Read("demo", strings.NewReader(demoGrammar))
	}
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("unable to open grammar file: %w", err)
	}
	defer f.Close()
	return grammar.Read(filename, f)
}

func validFormat(f string) bool {
	switch f {
	case formatBracket, formatCanon, formatTree, formatDot:
		return true
	}
	return false
}

// Intp is our interpreter object
type Intp struct {
	G      *grammar.Grammar
	parser *search.Parser
	repl   *readline.Instance
	format string
	indent int
	gotok  bool
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err == readline.ErrInterrupt {
			continue
		} else if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		if strings.HasPrefix(line, ":") {
			if quit := intp.Execute(strings.Fields(line[1:])); quit {
				break
			}
			continue
		}
		intp.Eval(line) // errors have been displayed
	}
	println("Good bye!")
}

// Execute executes a colon-command. It returns true if the user wants to quit.
func (intp *Intp) Execute(args []string) bool {
	if len(args) == 0 {
		return false
	}
	switch args[0] {
	case "q", "quit":
		return true
	case "rules":
		var b strings.Builder
		intp.G.Format(&b)
		pterm.Println(b.String())
	case "stats":
		pterm.Info.Println(intp.parser.Stats().String())
	case "format":
		if len(args) != 2 || !validFormat(args[1]) {
			pterm.Error.Println("Usage: :format bracket|canon|tree|dot")
			break
		}
		intp.format = args[1]
	default:
		pterm.Error.Printf("Unknown command :%s\n", args[0])
	}
	return false
}

// Eval splits a line into tokens, parses them and prints every parse.
func (intp *Intp) Eval(line string) error {
	tokens, err := intp.tokenize(line)
	if err != nil {
		pterm.Error.Println(err.Error())
		return err
	}
	tracer().Debugf("tokens = %v", tokens)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	trees, err := intp.parser.ParseContext(ctx, tokens)
	for i, t := range trees {
		intp.printTree(i+1, t)
	}
	if err != nil {
		pterm.Error.Println(err.Error())
		return err
	}
	if len(trees) == 0 {
		pterm.Info.Println("No parse")
		return nil
	}
	pterm.Info.Printf("%d parse(s), %s\n", len(trees), intp.parser.Stats())
	return nil
}

func (intp *Intp) tokenize(line string) ([]string, error) {
	if intp.gotok {
		var scanErr error
		sc := scanner.GoTokenizer("input", strings.NewReader(line))
		sc.SetErrorHandler(func(e error) {
			scanErr = e
		})
		tokens := scanner.Lexemes(sc)
		return tokens, scanErr
	}
	return lexmach.Words(line)
}

func (intp *Intp) printTree(no int, t *bottomup.Node) {
	pterm.Info.Printf("Parse #%d [%s]\n", no, tree.Fingerprint(t)[:8])
	switch intp.format {
	case formatCanon:
		pterm.Println(bottomup.CanonicalTree(t))
	case formatTree:
		root := pterm.NewTreeFromLeveledList(leveledNodes(t, pterm.LeveledList{}, 0))
		pterm.DefaultTree.WithRoot(root).Render()
	case formatDot:
		tree.ToGraphViz(t, os.Stdout)
	default:
		pterm.Println(tree.RenderIndent(t, intp.indent, ""))
	}
}

func leveledNodes(n *bottomup.Node, ll pterm.LeveledList, level int) pterm.LeveledList {
	ll = append(ll, pterm.LeveledListItem{
		Level: level,
		Text:  n.Symbol,
	})
	for _, ch := range n.Children {
		ll = leveledNodes(ch, ll, level+1)
	}
	return ll
}
