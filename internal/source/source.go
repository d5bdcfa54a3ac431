// Package source loads the published COVID-19 time-series CSVs.
package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/covid19gng/goodnews/core/series"
	"github.com/covid19gng/goodnews/internal/contract"
	"github.com/covid19gng/goodnews/schema"
	log "github.com/sirupsen/logrus"
)

const logPrefix = "source"

// Source reads tables from a base URL or a local directory.
type Source struct {
	base   string
	client *http.Client
	log    *log.Entry
}

var _ contract.TableSource = &Source{} // Compile-time check

// New returns a Source rooted at base. Requests are bounded by timeout.
func New(base string, timeout time.Duration) *Source {
	return &Source{
		base:   strings.TrimSuffix(base, "/"),
		client: &http.Client{Timeout: timeout},
		log:    contract.Logger(logPrefix),
	}
}

// FileName returns the published file name for a dataset and scope.
func FileName(dataset schema.Dataset, scope schema.Scope) string {
	return fmt.Sprintf("time_series_covid19_%s_%s.csv", dataset, scope)
}

// TableName returns the name given to a loaded table.
func TableName(dataset schema.Dataset, scope schema.Scope) string {
	return fmt.Sprintf("%s_%s", dataset, scope)
}

// IsRemote reports whether base points at an HTTP location.
func IsRemote(base string) bool {
	return strings.HasPrefix(base, "http://") || strings.HasPrefix(base, "https://")
}

// Load implements contract.TableSource.
func (s *Source) Load(ctx context.Context, dataset schema.Dataset, scope schema.Scope) (*series.Table, error) {
	name := FileName(dataset, scope)
	rc, err := s.open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()

	tbl, err := ParseTable(TableName(dataset, scope), rc)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", name, err)
	}
	s.log.WithFields(log.Fields{
		"table": tbl.Name,
		"rows":  len(tbl.Rows),
		"dates": len(tbl.Dates),
	}).Debug("loaded table")
	return tbl, nil
}

func (s *Source) open(ctx context.Context, name string) (io.ReadCloser, error) {
	if !IsRemote(s.base) {
		path := filepath.Join(s.base, name)
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", path, err)
		}
		return f, nil
	}

	url := s.base + "/" + name
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", url, err)
	}
	s.log.WithField("url", url).Debug("fetching")
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("failed to fetch %s: unexpected status %s", url, resp.Status)
	}
	return resp.Body, nil
}
