package quotes

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/etnz/folio"
)

// HTTPSource fetches one provider JSON document per symbol and reads the quote
// out of it with Paths.
type HTTPSource struct {
	Client *http.Client // http.DefaultClient when nil
	// URL of the provider, "{symbol}" is replaced by the escaped symbol.
	URL      string
	Paths    Paths
	Currency string
}

// Quote implements Source.
func (s HTTPSource) Quote(ctx context.Context, symbol string) (folio.PriceResult, error) {
	addr := strings.ReplaceAll(s.URL, "{symbol}", url.PathEscape(symbol))
	var doc any
	if err := jwget(ctx, s.Client, addr, &doc); err != nil {
		return folio.PriceResult{}, err
	}
	return JSONPathSource{Doc: doc, Paths: s.Paths, Currency: s.Currency}.Quote(ctx, symbol)
}

// jwget performs an HTTP GET request to addr and decodes the JSON response
// body into data.
func jwget(ctx context.Context, client *http.Client, addr string, data any) error {
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %v%v", ErrNotFound, req.URL.Host, req.URL.Path)
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("cannot http GET %v%v: %v", req.URL.Host, req.URL.Path, resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(data); err != nil {
		return fmt.Errorf("cannot decode %v%v: %w", req.URL.Host, req.URL.Path, err)
	}
	return nil
}
