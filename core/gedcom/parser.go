package gedcom

import (
	"bufio"
	"io"

	gverrors "github.com/FocuswithJustin/gedvault/core/errors"
)

// maxLineSize bounds a single GEDCOM line. Longer lines are skipped and
// counted as malformed.
const maxLineSize = 16 << 20

// Result holds the records of one parse pass.
type Result struct {
	Individuals map[string]*RawIndividual
	Families    map[string]*RawFamily
	Stats       Stats
}

// Stats holds parser statistics for logging.
type Stats struct {
	TotalLines     int
	BlankLines     int
	MalformedLines int // non-blank lines that could not be tokenized
	IgnoredLines   int // tokenized lines that contributed nothing
	Records        int // level-0 record lines, any kind
	UnknownRecords int
}

// individualHandler applies one level-1 line to an individual.
type individualHandler func(p *Parser, ind *RawIndividual, payload string)

// familyHandler applies one level-1 line to a family.
type familyHandler func(fam *RawFamily, payload string)

// individualTags dispatches level-1 INDI lines. Tags not listed here land in
// RawIndividual.Extra.
var individualTags = map[string]individualHandler{
	"NAME": func(_ *Parser, ind *RawIndividual, v string) { ind.Name = v },
	"FAMC": func(_ *Parser, ind *RawIndividual, v string) { ind.FamC = v },
	"FAMS": func(_ *Parser, ind *RawIndividual, v string) { ind.FamS = append(ind.FamS, v) },
	"BIRT": func(p *Parser, ind *RawIndividual, _ string) {
		ind.Birth = Event{}
		p.sub = SubBirth
	},
	"DEAT": func(p *Parser, ind *RawIndividual, _ string) {
		ind.Death = Event{}
		p.sub = SubDeath
	},
	"OCCU": func(_ *Parser, ind *RawIndividual, v string) { ind.Occupation = v },
	"NOTE": func(_ *Parser, ind *RawIndividual, v string) { ind.Notes = v },
	"RESI": func(_ *Parser, ind *RawIndividual, v string) { ind.Residence = v },
}

// familyTags dispatches level-1 FAM lines. Tags not listed here land in
// RawFamily.Extra.
var familyTags = map[string]familyHandler{
	"HUSB": func(fam *RawFamily, v string) { fam.Husband = v },
	"WIFE": func(fam *RawFamily, v string) { fam.Wife = v },
	"CHIL": func(fam *RawFamily, v string) { fam.Children = append(fam.Children, v) },
}

// Parser is the line-by-line state machine. The zero value is not usable;
// create one with NewParser.
type Parser struct {
	res *Result

	recordID string
	kind     Kind
	sub      SubBlock
}

// NewParser returns a parser with empty record maps.
func NewParser() *Parser {
	return &Parser{
		res: &Result{
			Individuals: make(map[string]*RawIndividual),
			Families:    make(map[string]*RawFamily),
		},
	}
}

// Feed processes one line. It never fails: lines that cannot be used are
// counted and dropped.
func (p *Parser) Feed(line string) {
	p.res.Stats.TotalLines++

	tok, ok := Tokenize(line)
	if !ok {
		if isBlank(line) {
			p.res.Stats.BlankLines++
		} else {
			p.res.Stats.MalformedLines++
		}
		return
	}

	if tok.Level == 0 && IsPointer(tok.Tag) {
		p.startRecord(tok)
		return
	}

	var used bool
	switch p.kind {
	case KindIndividual:
		used = p.individualLine(tok)
	case KindFamily:
		used = p.familyLine(tok)
	}
	if !used {
		p.res.Stats.IgnoredLines++
	}
}

// skipLine counts a line that was dropped before tokenizing.
func (p *Parser) skipLine() {
	p.res.Stats.TotalLines++
	p.res.Stats.MalformedLines++
}

// Result returns the records collected so far.
func (p *Parser) Result() *Result {
	return p.res
}

func (p *Parser) startRecord(tok Token) {
	p.res.Stats.Records++
	p.recordID = tok.Tag
	p.kind = kindOf(firstWord(tok.Payload))
	p.sub = SubNone

	switch p.kind {
	case KindIndividual:
		if _, ok := p.res.Individuals[p.recordID]; !ok {
			p.res.Individuals[p.recordID] = &RawIndividual{ID: p.recordID}
		}
	case KindFamily:
		if _, ok := p.res.Families[p.recordID]; !ok {
			p.res.Families[p.recordID] = &RawFamily{ID: p.recordID}
		}
	default:
		p.res.Stats.UnknownRecords++
	}
}

func (p *Parser) individualLine(tok Token) bool {
	ind := p.res.Individuals[p.recordID]

	switch tok.Level {
	case 1:
		p.sub = SubNone
		if h, ok := individualTags[tok.Tag]; ok {
			h(p, ind, tok.Payload)
		} else {
			ind.setExtra(tok.Tag, tok.Payload)
		}
		return true
	case 2:
		switch p.sub {
		case SubBirth:
			ind.Birth[tok.Tag] = tok.Payload
			return true
		case SubDeath:
			ind.Death[tok.Tag] = tok.Payload
			return true
		}
	}
	return false
}

func (p *Parser) familyLine(tok Token) bool {
	if tok.Level != 1 {
		return false
	}
	fam := p.res.Families[p.recordID]
	if h, ok := familyTags[tok.Tag]; ok {
		h(fam, tok.Payload)
	} else {
		fam.setExtra(tok.Tag, tok.Payload)
	}
	return true
}

// Parse reads GEDCOM lines from r until EOF. Only read errors from r are
// returned.
func Parse(r io.Reader) (*Result, error) {
	p := NewParser()

	br := bufio.NewReaderSize(r, 64*1024)
	first := true
	for {
		line, ok, err := readLine(br)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if !ok {
			p.skipLine()
			continue
		}
		if first {
			line = stripBOM(line)
			first = false
		}
		p.Feed(line)
	}

	return p.Result(), nil
}

// readLine returns the next line without its terminator. A line longer than
// maxLineSize is consumed and reported with ok == false.
func readLine(br *bufio.Reader) (line string, ok bool, err error) {
	var buf []byte
	tooLong := false
	for {
		frag, isPrefix, err := br.ReadLine()
		if err != nil {
			if err == io.EOF && (buf != nil || tooLong) {
				break
			}
			return "", false, err
		}
		if !tooLong {
			if len(buf)+len(frag) > maxLineSize {
				tooLong = true
				buf = nil
			} else {
				buf = append(buf, frag...)
			}
		}
		if !isPrefix {
			break
		}
	}
	if tooLong {
		return "", false, nil
	}
	return string(buf), true, nil
}

// ParseFile parses the GEDCOM file at path. Files ending in .xz are
// decompressed on the fly. A missing or unreadable file is returned as an
// *errors.IOError; nothing is returned in that case.
func ParseFile(path string) (*Result, error) {
	rc, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	res, err := Parse(rc)
	if err != nil {
		return nil, gverrors.NewIO("read", path, err)
	}
	return res, nil
}
