package taxonomy

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const (
	// fieldSep separates fields in NCBI dump files.
	fieldSep = "\t|\t"
	// lineEnd terminates every line of NCBI dump files.
	lineEnd = "\t|"

	nodesFieldsNum = 13
	namesFieldsNum = 4

	// ScientificName is the only name class kept from names.dmp.
	ScientificName = "scientific name"
)

// NodeInfo keeps per-node data from nodes.dmp. Only Rank takes part in
// lineage computations, the rest is carried along untouched.
type NodeInfo struct {
	Rank              string
	EMBLCode          string
	DivisionID        string
	InheritedDivision string
	GeneticCodeID     string
	Comments          string
}

// Name is a scientific name record from names.dmp.
type Name struct {
	Name       string
	UniqueName string
	Class      string
}

// ParseNodes reads nodes.dmp content. It returns child to parent mapping
// and per-node information. The file argument is used only in error
// messages. Any line that does not have exactly 13 fields stops parsing
// with an error.
func ParseNodes(
	r io.Reader,
	file string,
) (map[int]int, map[int]NodeInfo, error) {
	parents := make(map[int]int)
	info := make(map[int]NodeInfo)

	var lineNum int
	sc := newScanner(r)
	for sc.Scan() {
		lineNum++
		fields, ok := splitLine(sc.Text())
		if !ok {
			continue
		}
		if len(fields) != nodesFieldsNum {
			err := fmt.Errorf("expected %d fields, got %d",
				nodesFieldsNum, len(fields))
			return nil, nil, ParseError(file, lineNum, err)
		}

		id, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, nil, ParseError(file, lineNum, err)
		}
		parentID, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, nil, ParseError(file, lineNum, err)
		}

		parents[id] = parentID
		info[id] = NodeInfo{
			Rank:              fields[2],
			EMBLCode:          fields[3],
			DivisionID:        fields[4],
			InheritedDivision: fields[5],
			GeneticCodeID:     fields[6],
			Comments:          fields[12],
		}
	}
	if err := sc.Err(); err != nil {
		return nil, nil, ParseError(file, lineNum+1, err)
	}

	return parents, info, nil
}

// ParseNames reads names.dmp content and keeps only scientific names.
// If a taxid has several scientific names, the last one wins.
func ParseNames(r io.Reader, file string) (map[int]Name, error) {
	names := make(map[int]Name)

	var lineNum int
	sc := newScanner(r)
	for sc.Scan() {
		lineNum++
		fields, ok := splitLine(sc.Text())
		if !ok {
			continue
		}
		if len(fields) != namesFieldsNum {
			err := fmt.Errorf("expected %d fields, got %d",
				namesFieldsNum, len(fields))
			return nil, ParseError(file, lineNum, err)
		}

		if fields[3] != ScientificName {
			continue
		}

		id, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, ParseError(file, lineNum, err)
		}

		names[id] = Name{
			Name:       fields[1],
			UniqueName: fields[2],
			Class:      fields[3],
		}
	}
	if err := sc.Err(); err != nil {
		return nil, ParseError(file, lineNum+1, err)
	}

	return names, nil
}

func newScanner(r io.Reader) *bufio.Scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return sc
}

// splitLine removes the line terminator and splits the line into fields.
// Blank lines are reported with ok == false.
func splitLine(line string) ([]string, bool) {
	line = strings.TrimSuffix(line, "\r")
	if strings.TrimSpace(line) == "" {
		return nil, false
	}
	line = strings.TrimSuffix(line, lineEnd)
	return strings.Split(line, fieldSep), true
}
