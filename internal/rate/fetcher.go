package rate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/novarajewels/jewellery-backend/internal/apperr"
	"github.com/novarajewels/jewellery-backend/internal/pricing"
)

// gramsPerTroyOunce converts the provider's per-ounce quote to per-gram.
const gramsPerTroyOunce = 31.1035

// Fetcher pulls the live XAG quote from goldapi.io. The provider quotes per
// troy ounce; we store per gram.
type Fetcher struct {
	url    string
	apiKey string
	client *http.Client
}

func NewFetcher(url, apiKey string, timeout time.Duration) *Fetcher {
	return &Fetcher{
		url:    url,
		apiKey: apiKey,
		client: &http.Client{Timeout: timeout},
	}
}

type goldAPIResponse struct {
	Price float64 `json:"price"`
}

// FetchPricePerGram returns the current silver price per gram in INR.
func (f *Fetcher) FetchPricePerGram(ctx context.Context) (float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return 0, apperr.Wrap(apperr.External, "rate provider unavailable", err)
	}
	req.Header.Set("x-access-token", f.apiKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := f.client.Do(req)
	if err != nil {
		return 0, apperr.Wrap(apperr.External, "rate provider unavailable", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return 0, apperr.Wrap(apperr.External, "rate provider unavailable",
			fmt.Errorf("unexpected status %d", res.StatusCode))
	}

	var payload goldAPIResponse
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return 0, apperr.Wrap(apperr.External, "rate provider unavailable", err)
	}
	if payload.Price <= 0 {
		return 0, apperr.New(apperr.External, "rate provider returned invalid price")
	}

	return pricing.Round2(payload.Price / gramsPerTroyOunce), nil
}
