package crawler

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"pricewatch/internal/config"
	"pricewatch/internal/models"
	"pricewatch/internal/normalizer"
	"pricewatch/pkg/utils"
)

// Catalog page selectors.
const (
	selectorTitle = `[data-testid="product-title"]`
	selectorModel = `[data-testid="product-model"]`
	selectorPrice = `[data-testid="product-price"]`
	selectorSKU   = `[data-testid="product-sku"]`
	selectorImage = `[data-testid="product-image"]`
)

// Extraction errors.
var (
	ErrMissingElement   = errors.New("missing required element")
	ErrMissingAttribute = errors.New("missing required attribute")
	ErrAllMirrorsFailed = errors.New("all base URLs failed")
)

// CatalogSource extracts product snapshots from a static HTML catalog. When
// mirrors are configured, each page is tried against the base URLs in order.
type CatalogSource struct {
	cfg     *config.SourceConfig
	scraper *Scraper
	bases   []string
}

// NewCatalogSource creates a catalog source for the configured pages.
func NewCatalogSource(cfg *config.SourceConfig, scraper *Scraper) *CatalogSource {
	all := cfg.AllBaseURLs()

	bases := make([]string, 0, len(all))
	for _, base := range all {
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}

		bases = append(bases, base)
	}

	return &CatalogSource{
		cfg:     cfg,
		scraper: scraper,
		bases:   bases,
	}
}

// Name returns the adapter identifier recorded on every snapshot.
func (c *CatalogSource) Name() string {
	return c.cfg.Name
}

// Fetch scrapes every configured page into a snapshot. All snapshots share
// the run timestamp.
func (c *CatalogSource) Fetch(now time.Time) ([]models.Snapshot, error) {
	out := make([]models.Snapshot, 0, len(c.cfg.Pages))

	for _, page := range c.cfg.Pages {
		snap, err := c.fetchPage(page, now)
		if err != nil {
			return nil, fmt.Errorf("page %s: %w", page, err)
		}

		out = append(out, snap)
	}

	return out, nil
}

// fetchPage tries the primary base URL, then each mirror.
func (c *CatalogSource) fetchPage(page string, now time.Time) (models.Snapshot, error) {
	var lastErr error

	for _, base := range c.bases {
		pageURL, err := resolveURL(base, page)
		if err != nil {
			return models.Snapshot{}, err
		}

		snap, err := c.extract(pageURL, now)
		if err == nil {
			return snap, nil
		}

		lastErr = err
	}

	if len(c.bases) == 1 {
		return models.Snapshot{}, lastErr
	}

	return models.Snapshot{}, fmt.Errorf("%w (%d tried): %v", ErrAllMirrorsFailed, len(c.bases), lastErr)
}

func (c *CatalogSource) extract(pageURL string, now time.Time) (models.Snapshot, error) {
	html, err := c.scraper.FetchPage(pageURL)
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("failed to fetch %s: %w", pageURL, err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("failed to parse HTML from %s: %w", pageURL, err)
	}

	title, err := requiredText(doc, selectorTitle)
	if err != nil {
		return models.Snapshot{}, err
	}

	model, err := requiredText(doc, selectorModel)
	if err != nil {
		return models.Snapshot{}, err
	}

	priceText, err := requiredText(doc, selectorPrice)
	if err != nil {
		return models.Snapshot{}, err
	}

	imgSrc, err := requiredAttr(doc, selectorImage, "src")
	if err != nil {
		return models.Snapshot{}, err
	}

	imageURL, err := resolveURL(pageURL, imgSrc)
	if err != nil {
		return models.Snapshot{}, err
	}

	price, err := normalizer.ParsePrice(priceText)
	if err != nil {
		return models.Snapshot{}, err
	}

	currency := c.cfg.Currency
	if currency == "" {
		currency = models.DefaultCurrency
	}

	return models.Snapshot{
		Timestamp:  now,
		Source:     c.cfg.Name,
		Model:      model,
		Title:      title,
		SKU:        optionalText(doc, selectorSKU),
		Currency:   currency,
		Price:      price,
		ProductURL: pageURL,
		ImageURL:   imageURL,
	}, nil
}

func requiredText(doc *goquery.Document, selector string) (string, error) {
	sel := doc.Find(selector).First()
	if sel.Length() == 0 {
		return "", fmt.Errorf("%w: %s", ErrMissingElement, selector)
	}

	return utils.NormalizeWhitespace(sel.Text()), nil
}

func optionalText(doc *goquery.Document, selector string) string {
	sel := doc.Find(selector).First()
	if sel.Length() == 0 {
		return ""
	}

	return utils.NormalizeWhitespace(sel.Text())
}

func requiredAttr(doc *goquery.Document, selector, attr string) (string, error) {
	sel := doc.Find(selector).First()
	if sel.Length() == 0 {
		return "", fmt.Errorf("%w: %s", ErrMissingElement, selector)
	}

	val, ok := sel.Attr(attr)
	if !ok || val == "" {
		return "", fmt.Errorf("%w: %s@%s", ErrMissingAttribute, selector, attr)
	}

	return val, nil
}

// resolveURL joins a possibly relative reference against a base URL.
func resolveURL(base, ref string) (string, error) {
	b, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid base URL %q: %w", base, err)
	}

	r, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("invalid reference %q: %w", ref, err)
	}

	return b.ResolveReference(r).String(), nil
}
