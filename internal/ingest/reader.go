package ingest

import (
	"bufio"
	"encoding/csv"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/qepting91/hotfavs/internal/domain"
	"github.com/samber/lo"
)

// Regex for valid subreddit names
var subNameRegex = regexp.MustCompile(`^[A-Za-z0-9_]{2,21}$`)

// NormalizeFeedName trims user input such as " r/golang " down to "golang"
// and reports whether the result is a valid feed name.
func NormalizeFeedName(s string) (string, bool) {
	name := strings.TrimSpace(s)
	name = strings.TrimPrefix(name, "/")
	if len(name) >= 2 && strings.EqualFold(name[:2], "r/") {
		name = name[2:]
	}
	name = strings.TrimSuffix(name, "/")
	if !subNameRegex.MatchString(name) {
		return "", false
	}
	return name, true
}

// LoadIDs reads favorite ids from the first column of a CSV file with a
// header row. Blank and repeated ids are skipped.
func LoadIDs(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadIDs(f)
}

func ReadIDs(r io.Reader) ([]string, error) {
	cr := csv.NewReader(stripBOM(r))
	cr.FieldsPerRecord = -1

	var ids []string
	line := 0
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		line++
		if line == 1 {
			continue // Skip header
		}
		if len(rec) == 0 {
			continue
		}
		if id := domain.CanonicalID(rec[0]); id != "" {
			ids = append(ids, id)
		}
	}
	return lo.Uniq(ids), nil
}

func stripBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	rdr, _, err := br.ReadRune()
	if err != nil {
		return br
	}
	if rdr != '\uFEFF' {
		br.UnreadRune()
	}
	return br
}
