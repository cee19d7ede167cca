package validator

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/GoSim-25-26J-441/regnet-backend/internal/regulatory_network/domain"
	"github.com/GoSim-25-26J-441/regnet-backend/internal/regulatory_network/ingest/parser"
	"github.com/GoSim-25-26J-441/regnet-backend/internal/regulatory_network/metrics"
)

const (
	datasetSchemaURL  = "https://regnet.schemas.local/dataset.schema.json"
	newsItemSchemaURL = "https://regnet.schemas.local/news_item.schema.json"
)

var (
	//go:embed schemas/dataset.schema.json
	datasetSchema string
	//go:embed schemas/news_item.schema.json
	newsItemSchema string
)

// Validator checks raw documents against the dataset and news contracts.
type Validator struct {
	dataset  *jsonschema.Schema
	newsItem *jsonschema.Schema
}

func New() (*Validator, error) {
	ds, err := compile(datasetSchemaURL, datasetSchema)
	if err != nil {
		return nil, err
	}
	ns, err := compile(newsItemSchemaURL, newsItemSchema)
	if err != nil {
		return nil, err
	}
	return &Validator{dataset: ds, newsItem: ns}, nil
}

// MustNew is New for package-level wiring where the embedded schemas are known good.
func MustNew() *Validator {
	v, err := New()
	if err != nil {
		panic(err)
	}
	return v
}

func compile(schemaURL, schema string) (*jsonschema.Schema, error) {
	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft2020
	c.AssertFormat = true
	if err := c.AddResource(schemaURL, strings.NewReader(schema)); err != nil {
		return nil, fmt.Errorf("schema load failed: %w", err)
	}
	compiled, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("schema compile failed: %w", err)
	}
	return compiled, nil
}

// ValidateDataset validates a raw JSON dataset and decodes it.
func (v *Validator) ValidateDataset(raw []byte) (domain.Dataset, error) {
	doc, err := parser.ParseJSONBytes(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidDataset, err)
	}
	if err := v.dataset.Validate(doc); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidDataset, err)
	}

	var ds domain.Dataset
	if err := json.Unmarshal(raw, &ds); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidDataset, err)
	}
	if err := checkDataset(ds); err != nil {
		return nil, err
	}
	if ds == nil {
		ds = domain.Dataset{}
	}
	return ds, nil
}

// ValidateNews validates a raw news document. A document that is not an array decodes
// to an empty list; any malformed item rejects the whole document.
func (v *Validator) ValidateNews(raw []byte) ([]domain.NewsItem, error) {
	doc, err := parser.ParseJSONBytes(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidNews, err)
	}
	arr, ok := doc.([]any)
	if !ok {
		return []domain.NewsItem{}, nil
	}

	items := make([]domain.NewsItem, 0, len(arr))
	for i, entry := range arr {
		if err := v.newsItem.Validate(entry); err != nil {
			return nil, fmt.Errorf("%w: item %d: %v", domain.ErrInvalidNews, i, err)
		}
		b, err := json.Marshal(entry)
		if err != nil {
			return nil, fmt.Errorf("%w: item %d: %v", domain.ErrInvalidNews, i, err)
		}
		var item domain.NewsItem
		if err := json.NewDecoder(bytes.NewReader(b)).Decode(&item); err != nil {
			return nil, fmt.Errorf("%w: item %d: %v", domain.ErrInvalidNews, i, err)
		}
		items = append(items, item)
	}
	return items, nil
}

// checkDataset enforces the invariants a structural schema cannot express. Every
// resolved regulator ID, explicit or derived, must be unique across the dataset and must
// not collide with a country node ID.
func checkDataset(ds domain.Dataset) error {
	seen := map[string]bool{}
	countryNodes := make(map[string]bool, len(ds))
	for i, c := range ds {
		if seen[c.ISO3] {
			return fmt.Errorf("%w: duplicate iso3 %q at record %d", domain.ErrInvalidDataset, c.ISO3, i)
		}
		seen[c.ISO3] = true
		countryNodes[metrics.CountryNodeID(c.ISO3)] = true
	}

	owner := map[string]string{}
	for _, c := range ds {
		for _, s := range c.Sources {
			if !isAbsURL(s) {
				return fmt.Errorf("%w: %s: malformed source url %q", domain.ErrInvalidDataset, c.ISO3, s)
			}
		}
		for j, r := range c.Regulators {
			if !isAbsURL(r.URL) {
				return fmt.Errorf("%w: %s: regulator %d has malformed url %q", domain.ErrInvalidDataset, c.ISO3, j, r.URL)
			}
			id := metrics.RegulatorID(c.ISO3, r, j)
			if countryNodes[id] {
				return fmt.Errorf("%w: %s: regulator %d id %q collides with a country node", domain.ErrInvalidDataset, c.ISO3, j, id)
			}
			if prev, dup := owner[id]; dup {
				return fmt.Errorf("%w: %s: regulator %d id %q already used in %s", domain.ErrInvalidDataset, c.ISO3, j, id, prev)
			}
			owner[id] = c.ISO3
		}
	}
	return nil
}

func isAbsURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && u.IsAbs()
}
