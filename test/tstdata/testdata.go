package tstdata

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path"
	"strings"
)

// Descr describes a single test case of a test file.
type Descr struct {
	Title   string
	Input   string
	Options string
	Output  string
	Error   string
	Todo    bool
}

func GetFiles(dataDir string) []string {
	files, err := os.ReadDir(dataDir)
	if err != nil {
		log.Fatal(err)
	}
	var names []string
	for _, f := range files {
		name := f.Name()
		if strings.HasSuffix(name, ".t") {
			names = append(names, path.Join(dataDir, name))
		}
	}
	return names
}

// parser holds lines of a test file.
// Text blocks defined by
// =VAR= name
// ...text lines ...
// =END=
// are substituted for ${name} in later text.
type parser struct {
	file  string
	lines []string
	pos   int
	vars  map[string]string
}

// ParseFile parses the named file as a list of test descriptions.
func ParseFile(file string) ([]*Descr, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	p := &parser{
		file:  file,
		lines: strings.SplitAfter(string(data), "\n"),
		vars:  make(map[string]string),
	}
	return p.parse()
}

// definition splits line "=NAME=rest" into NAME and rest.
func definition(line string) (string, string, bool) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, "=") {
		return "", "", false
	}
	name, rest, found := strings.Cut(line[1:], "=")
	if !found || name == "" {
		return "", "", false
	}
	for _, ch := range name {
		if !('A' <= ch && ch <= 'Z' || ch == '_') {
			return "", "", false
		}
	}
	return name, strings.TrimSpace(rest), true
}

// text returns rest of a single line definition or the lines up
// to next definition. A terminating =END= is skipped.
func (p *parser) text(rest string) string {
	if rest != "" {
		return p.subst(rest)
	}
	start := p.pos
	for p.pos < len(p.lines) {
		if _, _, ok := definition(p.lines[p.pos]); ok {
			break
		}
		p.pos++
	}
	text := strings.Join(p.lines[start:p.pos], "")
	if p.pos < len(p.lines) {
		if name, _, _ := definition(p.lines[p.pos]); name == "END" {
			p.pos++
		}
	}
	return p.subst(text)
}

func (p *parser) subst(text string) string {
	for name, val := range p.vars {
		text = strings.ReplaceAll(text, "${"+name+"}", val)
	}
	return text
}

func (p *parser) parse() ([]*Descr, error) {
	var result []*Descr
	var d *Descr
	var seen map[string]bool
	add := func() error {
		if d == nil {
			return errors.New("missing =TITLE= in first test")
		}
		if d.Input == "" {
			return fmt.Errorf("missing =INPUT= in test with =TITLE=%s", d.Title)
		}
		if (d.Output == "") == (d.Error == "") {
			return fmt.Errorf(
				"need either =OUTPUT= or =ERROR= in test with =TITLE=%s", d.Title)
		}
		result = append(result, d)
		return nil
	}
	for p.pos < len(p.lines) {
		line := strings.TrimSpace(p.lines[p.pos])
		// Skip empty lines and comments between definitions.
		if line == "" || line[0] == '#' {
			p.pos++
			continue
		}
		name, rest, ok := definition(line)
		if !ok {
			return nil, fmt.Errorf("expected token '=...=' at line %d of %s: %s",
				p.pos+1, p.file, line)
		}
		p.pos++
		switch name {
		case "VAR":
			if rest == "" {
				return nil, errors.New("missing name after =VAR=")
			}
			p.vars[rest] = strings.TrimSuffix(p.text(""), "\n")
			continue
		case "TITLE":
			if d != nil {
				if err := add(); err != nil {
					return nil, err
				}
			}
			d = &Descr{Title: p.text(rest)}
			seen = make(map[string]bool)
			continue
		}
		if d == nil {
			return nil, errors.New("expected =TITLE=")
		}
		if seen[name] {
			return nil, fmt.Errorf(
				"found multiple =%s= in test with =TITLE=%s", name, d.Title)
		}
		seen[name] = true
		switch name {
		case "INPUT":
			d.Input = p.text(rest)
		case "OPTIONS":
			d.Options = p.text(rest)
		case "OUTPUT":
			d.Output = p.text(rest)
		case "ERROR":
			d.Error = p.text(rest)
		case "TODO":
			d.Todo = true
		default:
			return nil, fmt.Errorf(
				"unexpected =%s= in test with =TITLE=%s", name, d.Title)
		}
	}
	if err := add(); err != nil {
		return nil, err
	}
	return result, nil
}
