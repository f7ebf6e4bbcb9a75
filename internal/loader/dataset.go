package loader

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"
	"strconv"
	"strings"

	"github.com/ZJUSCT/resolver/internal/resolver"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatOf guesses the encoding of ref from its extension. Anything that is
// not .yaml or .yml is read as JSON.
func FormatOf(ref string) Format {
	p := ref
	if u, err := url.Parse(ref); err == nil && u.Scheme != "" {
		p = u.Path
	}
	switch strings.ToLower(path.Ext(p)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

// number accepts both numeric and string encodings, as produced by judge
// exports that serialise decimals as strings.
type number float64

func parseNumber(s string) (number, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "null" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	return number(f), nil
}

func (n *number) UnmarshalJSON(b []byte) error {
	v, err := parseNumber(strings.Trim(string(b), `"`))
	if err != nil {
		return err
	}
	*n = v
	return nil
}

func (n *number) UnmarshalYAML(node *yaml.Node) error {
	v, err := parseNumber(node.Value)
	if err != nil {
		return err
	}
	*n = v
	return nil
}

func (n number) id() (int64, error) {
	i := int64(n)
	if number(i) != n {
		return 0, fmt.Errorf("%w: id %v is not an integer", resolver.ErrMalformedInput, float64(n))
	}
	return i, nil
}

type wireDataset struct {
	Users []struct {
		ID       number `json:"userId" yaml:"userId"`
		Username string `json:"username" yaml:"username"`
		FullName string `json:"fullName" yaml:"fullName"`
	} `json:"users" yaml:"users"`
	Problems []struct {
		ID     number `json:"problemId" yaml:"problemId"`
		Name   string `json:"name" yaml:"name"`
		Points number `json:"points" yaml:"points"`
	} `json:"problems" yaml:"problems"`
	Submissions []struct {
		ID        number `json:"submissionId" yaml:"submissionId"`
		ProblemID number `json:"problemId" yaml:"problemId"`
		UserID    number `json:"userId" yaml:"userId"`
		Time      number `json:"time" yaml:"time"`
		Points    number `json:"points" yaml:"points"`
	} `json:"submissions" yaml:"submissions"`
}

// DecodeDataset parses a contest export.
func DecodeDataset(r io.Reader, format Format) (resolver.Dataset, error) {
	var w wireDataset
	var err error
	if format == FormatYAML {
		err = yaml.NewDecoder(r).Decode(&w)
	} else {
		err = json.NewDecoder(r).Decode(&w)
	}
	if errors.Is(err, io.EOF) {
		return resolver.Dataset{}, fmt.Errorf("%w: empty dataset", resolver.ErrMalformedInput)
	}
	if err != nil {
		return resolver.Dataset{}, fmt.Errorf("%w: %v", resolver.ErrMalformedInput, err)
	}

	var ds resolver.Dataset
	for _, u := range w.Users {
		id, err := u.ID.id()
		if err != nil {
			return resolver.Dataset{}, err
		}
		ds.Users = append(ds.Users, resolver.User{ID: id, Username: u.Username, FullName: u.FullName})
	}
	for _, p := range w.Problems {
		id, err := p.ID.id()
		if err != nil {
			return resolver.Dataset{}, err
		}
		ds.Problems = append(ds.Problems, resolver.Problem{ID: id, Name: p.Name, Points: float64(p.Points)})
	}
	for _, s := range w.Submissions {
		var ids [3]int64
		for i, n := range []number{s.ID, s.ProblemID, s.UserID} {
			if ids[i], err = n.id(); err != nil {
				return resolver.Dataset{}, err
			}
		}
		ds.Submissions = append(ds.Submissions, resolver.Submission{
			ID:        ids[0],
			ProblemID: ids[1],
			UserID:    ids[2],
			Time:      float64(s.Time),
			Points:    float64(s.Points),
		})
	}
	return ds, nil
}

// LoadDataset reads and decodes the contest export at ref.
func (s *Source) LoadDataset(ctx context.Context, ref string) (resolver.Dataset, error) {
	rc, err := s.Open(ctx, ref)
	if err != nil {
		return resolver.Dataset{}, fmt.Errorf("open dataset: %w", err)
	}
	defer rc.Close()

	ds, err := DecodeDataset(rc, FormatOf(ref))
	if err != nil {
		return resolver.Dataset{}, fmt.Errorf("decode %s: %w", ref, err)
	}
	zap.S().Infof("loaded dataset from %s: %d users, %d problems, %d submissions",
		ref, len(ds.Users), len(ds.Problems), len(ds.Submissions))
	return ds, nil
}

// WriteDataset encodes ds in the export format.
func WriteDataset(w io.Writer, ds resolver.Dataset, format Format) error {
	if format == FormatYAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(ds); err != nil {
			return err
		}
		return enc.Close()
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ds)
}
