// Copyright (c) 2026, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

// luaustrip removes type syntax from Luau programs, leaving the rest of the
// source untouched.
package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"runtime/debug"

	"github.com/google/renameio/v2"
	"github.com/pkg/diff"
	diffwrite "github.com/pkg/diff/write"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"
	"mvdan.cc/editorconfig"

	"mvdan.cc/luaustrip/fileutil"
	"mvdan.cc/luaustrip/syntax"
)

var (
	showVersion = flag.Bool("version", false, "")

	list      = flag.Bool("l", false, "")
	write     = flag.Bool("w", false, "")
	diffOut   = flag.Bool("d", false, "")
	allBlocks = flag.Bool("a", false, "")
	find      = flag.Bool("f", false, "")
	filename  = flag.String("filename", "", "")

	toJSON = flag.Bool("tojson", false, "")

	useEditorConfig = true

	parser  *syntax.Parser
	printer *syntax.Printer

	in    io.Reader = os.Stdin
	out   io.Writer = os.Stdout
	color bool

	version = "(devel)" // to match the default from runtime/debug
)

func main() {
	os.Exit(main1())
}

func main1() int {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, `usage: luaustrip [flags] [path ...]

If the only argument is a dash ('-') or no arguments are given, standard input
will be used. If a given path is a directory, it will be recursively searched
for Luau files - both by filename extension and by shebang.

The stripped program is printed to standard output, followed by a newline.

  -version  show version and exit

  -l        list files whose contents contain type syntax
  -w        write result to file instead of stdout
  -d        error with a diff when the file contains type syntax
  -a        strip every block, function expression and type assertion

  -filename str  provide a name for the standard input file

Utilities:

  -f        recursively find all Luau files and print the paths
  -tojson   print the stripped syntax tree to stdout as JSON
`)
	}
	flag.Parse()

	if *showVersion {
		// don't overwrite the version if it was set by -ldflags=-X
		if info, ok := debug.ReadBuildInfo(); ok && version == "(devel)" {
			mod := &info.Main
			if mod.Replace != nil {
				mod = mod.Replace
			}
			version = mod.Version
		}
		fmt.Fprintln(out, version)
		return 0
	}
	if os.Getenv("LUAUSTRIP_NO_EDITORCONFIG") == "true" {
		useEditorConfig = false
	}
	parser = syntax.NewParser()
	printer = syntax.NewPrinter()
	color = useColor(out)

	if flag.NArg() == 0 || (flag.NArg() == 1 && flag.Arg(0) == "-") {
		name := "<standard input>"
		if *filename != "" {
			name = *filename
		}
		if err := stripStdin(name); err != nil {
			if err != errChangedWithDiff {
				fmt.Fprintln(os.Stderr, err)
			}
			return 1
		}
		return 0
	}
	if *filename != "" {
		fmt.Fprintln(os.Stderr, "-filename can only be used with stdin")
		return 1
	}
	if *toJSON {
		fmt.Fprintln(os.Stderr, "-tojson can only be used with stdin")
		return 1
	}
	status := 0
	for _, path := range flag.Args() {
		if info, err := os.Stat(path); err == nil && !info.IsDir() && !*find {
			// When given paths to files directly, always strip
			// them, no matter their extension or shebang.
			if err := stripPath(path); err != nil {
				if err != errChangedWithDiff {
					fmt.Fprintln(os.Stderr, err)
				}
				status = 1
			}
			continue
		}
		if !walk(path, func(err error) {
			if err != errChangedWithDiff {
				fmt.Fprintln(os.Stderr, err)
			}
			status = 1
		}) {
			return 1
		}
	}
	return status
}

// useColor reports whether diffs written to w should be colored.
func useColor(w io.Writer) bool {
	if os.Getenv("FORCE_COLOR") == "true" {
		// Undocumented way to force color; used in the tests.
		return true
	} else if os.Getenv("TERM") == "dumb" {
		// Equivalent to forcing color to be turned off.
		return false
	} else if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return true
	}
	return false
}

var errChangedWithDiff = errors.New("")

func stripOptions() []syntax.StripOption {
	return []syntax.StripOption{syntax.AllBlocks(*allBlocks)}
}

func stripStdin(name string) error {
	if *write {
		return fmt.Errorf("-w cannot be used on standard input")
	}
	src, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("reading standard input: %w", err)
	}
	f, err := parser.Parse(bytes.NewReader(src), name)
	if err != nil {
		return err
	}
	f = syntax.StripTypes(f, stripOptions()...)
	if *toJSON {
		return writeJSON(out, f, true)
	}
	var buf bytes.Buffer
	if err := printer.Print(&buf, f); err != nil {
		return err
	}
	return emit(name, src, buf.Bytes())
}

func stripPath(path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	res, err := stripBytes(parser, printer, src, path)
	if err != nil {
		return err
	}
	return emit(path, src, res)
}

// stripBytes parses, strips and prints a single program.
func stripBytes(parser *syntax.Parser, printer *syntax.Printer, src []byte, path string) ([]byte, error) {
	f, err := parser.Parse(bytes.NewReader(src), path)
	if err != nil {
		return nil, err
	}
	f = syntax.StripTypes(f, stripOptions()...)
	var buf bytes.Buffer
	if err := printer.Print(&buf, f); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// emit writes the result of stripping a program, according to the output
// mode flags.
func emit(path string, src, res []byte) error {
	if !bytes.Equal(src, res) {
		if *list {
			if _, err := fmt.Fprintln(out, path); err != nil {
				return err
			}
		}
		if *write {
			info, err := os.Lstat(path)
			if err != nil {
				return err
			}
			perm := info.Mode().Perm()
			// TODO: support atomic writes on Windows once renameio
			// supports it
			if runtime.GOOS == "windows" {
				err = os.WriteFile(path, res, perm)
			} else {
				err = renameio.WriteFile(path, res, perm)
			}
			if err != nil {
				return err
			}
		}
		if *diffOut {
			opts := []diffwrite.Option{}
			if color {
				opts = append(opts, diffwrite.TerminalColor())
			}
			if err := diff.Text(path+".orig", path, src, res, out, opts...); err != nil {
				return fmt.Errorf("computing diff: %s", err)
			}
			return errChangedWithDiff
		}
	}
	if !*list && !*write && !*diffOut {
		if _, err := out.Write(res); err != nil {
			return err
		}
		if _, err := io.WriteString(out, "\n"); err != nil {
			return err
		}
	}
	return nil
}

var vcsDir = regexp.MustCompile(`^\.(git|svn|hg)$`)

var ecQuery = editorconfig.Query{
	FileCache:   make(map[string]*editorconfig.File),
	RegexpCache: make(map[string]*regexp.Regexp),
}

// candidate is a file found while walking a directory.
type candidate struct {
	path         string
	checkShebang bool
}

// walk strips all the Luau files found under path. Errors for single files
// are reported via onError; walk only returns false if the directory tree
// could not be walked.
func walk(path string, onError func(error)) bool {
	var files []candidate
	if err := filepath.WalkDir(path, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() && vcsDir.MatchString(entry.Name()) {
			return filepath.SkipDir
		}
		if useEditorConfig {
			props, err := ecQuery.Find(path)
			if err != nil {
				onError(err)
				return nil
			}
			if props.Get("ignore") == "true" {
				if entry.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
		}
		conf := fileutil.CouldBeLuau(entry)
		if conf == fileutil.ConfNotLuau {
			return nil
		}
		files = append(files, candidate{path, conf == fileutil.ConfIfShebang})
		return nil
	}); err != nil {
		// Something went wrong walking the filesystem; stop.
		onError(err)
		return false
	}

	results := make([]walkResult, len(files))
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			results[i] = processFile(file)
			return nil
		})
	}
	g.Wait() // errors are kept per file

	for i, res := range results {
		if res.err != nil {
			if !errors.Is(res.err, fs.ErrNotExist) {
				onError(res.err)
			}
			continue
		}
		if res.skip {
			continue
		}
		if *find {
			if _, err := fmt.Fprintln(out, files[i].path); err != nil {
				onError(err)
			}
			continue
		}
		if err := emit(files[i].path, res.src, res.res); err != nil {
			onError(err)
		}
	}
	return true
}

type walkResult struct {
	src, res []byte
	skip     bool // not a Luau file after all
	err      error
}

// processFile reads and strips a file found by walk. It runs concurrently
// with other calls, so it uses its own parser and printer.
func processFile(file candidate) walkResult {
	src, err := os.ReadFile(file.path)
	if err != nil {
		return walkResult{err: err}
	}
	if file.checkShebang && !fileutil.HasShebang(src) {
		return walkResult{skip: true}
	}
	if *find {
		return walkResult{}
	}
	res, err := stripBytes(syntax.NewParser(), syntax.NewPrinter(), src, file.path)
	return walkResult{src: src, res: res, err: err}
}
