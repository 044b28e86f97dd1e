package parser

import (
	"encoding/xml"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/dgallion1/headtree/internal/tree"
	"github.com/rug-compling/alpinods"
)

type alpinoDS struct {
	XMLName xml.Name    `xml:"alpino_ds"`
	Version string      `xml:"version,attr,omitempty"`
	Node    *alpinoNode `xml:"node"`
}

type alpinoNode struct {
	Begin  int           `xml:"begin,attr"`
	End    int           `xml:"end,attr"`
	Cat    string        `xml:"cat,attr,omitempty"`
	Pt     string        `xml:"pt,attr,omitempty"`
	Postag string        `xml:"postag,attr,omitempty"`
	Word   string        `xml:"word,attr,omitempty"`
	Index  string        `xml:"index,attr,omitempty"`
	Nodes  []*alpinoNode `xml:"node"`
}

// AlpinoParser reads Alpino dependency treebank XML (one alpino_ds document)
// as a constituency tree: cat labels phrases, pt or postag labels words, and
// words appear in surface order.
type AlpinoParser struct{}

func (p *AlpinoParser) Parse(r io.Reader, filename string) ([]*tree.Tree, error) {
	var doc alpinoDS
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse alpino xml: %w", err)
	}
	if newerVersion(doc.Version, alpinods.DtdVersion) {
		return nil, fmt.Errorf("alpino_ds version %s is newer than supported %s", doc.Version, alpinods.DtdVersion)
	}
	if doc.Node == nil {
		return nil, nil
	}
	t := alpinoTree(doc.Node)
	if t == nil {
		return nil, nil
	}
	if t.Label != "ROOT" {
		t = tree.Node("ROOT", t)
	}
	return []*tree.Tree{t}, nil
}

// alpinoTree converts a node, dropping empty index nodes. Alpino orders
// daughters by dependency, so they are sorted by position.
func alpinoTree(n *alpinoNode) *tree.Tree {
	if len(n.Nodes) == 0 {
		if n.Word == "" {
			return nil
		}
		tag := n.Pt
		if tag == "" {
			tag = n.Postag
		}
		if tag == "" {
			tag = "X"
		}
		return tree.Pre(strings.ToUpper(tag), n.Word)
	}
	kids := append([]*alpinoNode(nil), n.Nodes...)
	sort.SliceStable(kids, func(i, j int) bool { return kids[i].Begin < kids[j].Begin })
	out := &tree.Tree{Label: strings.ToUpper(n.Cat)}
	if out.Label == "TOP" {
		out.Label = "ROOT"
	}
	for _, k := range kids {
		if c := alpinoTree(k); c != nil {
			out.AddChild(c)
		}
	}
	if len(out.Children) == 0 {
		return nil
	}
	return out
}

// newerVersion compares dotted version numbers.
func newerVersion(v, than string) bool {
	if v == "" {
		return false
	}
	a, b := strings.Split(v, "."), strings.Split(than, ".")
	for i := 0; i < len(a) || i < len(b); i++ {
		var x, y int
		if i < len(a) {
			x, _ = strconv.Atoi(a[i])
		}
		if i < len(b) {
			y, _ = strconv.Atoi(b[i])
		}
		if x != y {
			return x > y
		}
	}
	return false
}
