package ioaccession

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const (
	assemblyAccessionCol = "assembly_accession"
	taxidCol             = "taxid"
)

// AssemblyHeader is the header of the table made from assembly summary.
var AssemblyHeader = []string{"accession", "accession.version", "taxid"}

// ParseAssemblySummary converts NCBI assembly_summary.txt into a TSV with
// accession, accession.version and taxid columns. The header of the
// summary is the last comment line before the data. It returns the
// number of written rows.
func ParseAssemblySummary(r io.Reader, w io.Writer) (int, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	cw := csv.NewWriter(w)
	cw.Comma = '\t'

	accIdx, taxIdx := -1, -1
	var lineNum, count int
	for sc.Scan() {
		lineNum++
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.HasPrefix(line, "#") {
			if a, t, ok := assemblyColumns(line); ok {
				accIdx, taxIdx = a, t
			}
			continue
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		if accIdx < 0 {
			return count, AssemblySummaryError(lineNum, errNoHeader)
		}
		if count == 0 {
			if err := cw.Write(AssemblyHeader); err != nil {
				return count, err
			}
		}

		fields := strings.Split(line, "\t")
		if len(fields) <= max(accIdx, taxIdx) {
			err := fmt.Errorf("expected at least %d fields, got %d",
				max(accIdx, taxIdx)+1, len(fields))
			return count, AssemblySummaryError(lineNum, err)
		}
		accVer := fields[accIdx]
		if _, err := strconv.Atoi(fields[taxIdx]); err != nil {
			return count, AssemblySummaryError(lineNum, err)
		}

		row := []string{StripVersion(accVer), accVer, fields[taxIdx]}
		if err := cw.Write(row); err != nil {
			return count, err
		}
		count++
	}
	if err := sc.Err(); err != nil {
		return count, AssemblySummaryError(lineNum+1, err)
	}

	if count == 0 {
		if err := cw.Write(AssemblyHeader); err != nil {
			return count, err
		}
	}
	cw.Flush()
	return count, cw.Error()
}

// assemblyColumns finds positions of accession and taxid columns in a
// header line.
func assemblyColumns(line string) (int, int, bool) {
	line = strings.TrimLeft(line, "# ")
	accIdx, taxIdx := -1, -1
	for i, v := range strings.Split(line, "\t") {
		switch strings.TrimSpace(v) {
		case assemblyAccessionCol:
			accIdx = i
		case taxidCol:
			taxIdx = i
		}
	}
	return accIdx, taxIdx, accIdx >= 0 && taxIdx >= 0
}
