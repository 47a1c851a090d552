package service

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"os"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"capsule-os/logging"
	"capsule-os/metrics"
	"capsule-os/models"
	"capsule-os/utils"
)

// LookbookFormat is the export format of a lookbook
type LookbookFormat string

const (
	LookbookHTML LookbookFormat = "html"
	LookbookPDF  LookbookFormat = "pdf"
)

// itemsPerPage is how many capsule items fit on one lookbook page
const itemsPerPage = 6

// LookbookServiceInterface defines the contract for lookbook exports
type LookbookServiceInterface interface {
	RenderHTML(ctx context.Context, result *models.CapsuleResult, embedImages bool) (string, error)
	GeneratePDF(ctx context.Context, result *models.CapsuleResult) ([]byte, error)
}

// LookbookService renders a capsule as a printable lookbook
type LookbookService struct {
	templatePath string
	chromePath   string
	timeout      time.Duration
	images       *ImageFetcher
}

// NewLookbookService creates a new LookbookService
func NewLookbookService(templatePath, chromePath string, timeout time.Duration, images *ImageFetcher) *LookbookService {
	return &LookbookService{
		templatePath: templatePath,
		chromePath:   chromePath,
		timeout:      timeout,
		images:       images,
	}
}

// Ensure LookbookService implements LookbookServiceInterface
var _ LookbookServiceInterface = (*LookbookService)(nil)

// lookbookItem is one capsule item prepared for the template
type lookbookItem struct {
	Category      string
	Placeholder   bool
	ValueBrand    string
	ValueName     string
	ValuePrice    string
	QualityBrand  string
	QualityName   string
	QualityPrice  string
	ImageURL      string
	ImageDataURI  template.URL
	PaletteColors []string
}

type lookbookData struct {
	Quarter         string
	Palette         []string
	StyleWords      string
	OutfitFormulas  []string
	DoNotBuy        []string
	Pages           [][]lookbookItem
	CoherenceScore  string
	ValueTotal      string
	QualityTotal    string
	GeneratedAtDate string
}

// detectChromePath returns the configured Chrome path or the first common installation found
func detectChromePath(configured string) string {
	if configured != "" {
		if _, err := os.Stat(configured); err == nil {
			return configured
		}
	}

	paths := []string{
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/snap/bin/chromium",
	}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// buildLookbookData converts a capsule into template data; images are embedded only when requested
func (s *LookbookService) buildLookbookData(ctx context.Context, result *models.CapsuleResult, embedImages bool) lookbookData {
	items := make([]lookbookItem, 0, len(result.Items))
	var valueTotal, qualityTotal float64

	for _, it := range result.Items {
		li := lookbookItem{
			Category:      it.Category,
			Placeholder:   it.Placeholder,
			ValueBrand:    it.BestValue.Brand,
			ValueName:     it.BestValue.Name,
			ValuePrice:    utils.FormatUSD(it.BestValue.Price),
			QualityBrand:  it.BestQuality.Brand,
			QualityName:   it.BestQuality.Name,
			QualityPrice:  utils.FormatUSD(it.BestQuality.Price),
			ImageURL:      it.BestValue.ImageURL,
			PaletteColors: it.PaletteColors,
		}
		valueTotal += it.BestValue.Price
		qualityTotal += it.BestQuality.Price

		if embedImages && li.ImageURL != "" && s.images != nil {
			dataURI, err := s.images.ThumbnailDataURI(ctx, li.ImageURL)
			if err != nil {
				logging.Warn().Err(err).Str("category", it.Category).Msg("⚠️  Failed to embed product image")
			} else {
				li.ImageDataURI = template.URL(dataURI)
			}
		}
		items = append(items, li)
	}

	data := lookbookData{
		Quarter:         string(result.Quarter),
		Palette:         result.Palette,
		StyleWords:      strings.Join(result.StyleWords, " · "),
		OutfitFormulas:  result.OutfitFormulas,
		DoNotBuy:        result.DoNotBuy,
		Pages:           paginateItems(items),
		ValueTotal:      utils.FormatUSD(valueTotal),
		QualityTotal:    utils.FormatUSD(qualityTotal),
		GeneratedAtDate: time.Now().Format("January 2, 2006"),
	}
	if result.CoherenceScores != nil {
		data.CoherenceScore = fmt.Sprintf("%.0f%%", result.CoherenceScores.TotalScore*100)
	}
	return data
}

// paginateItems splits items into pages of itemsPerPage
func paginateItems(items []lookbookItem) [][]lookbookItem {
	var pages [][]lookbookItem
	for i := 0; i < len(items); i += itemsPerPage {
		end := i + itemsPerPage
		if end > len(items) {
			end = len(items)
		}
		pages = append(pages, items[i:end])
	}
	return pages
}

// RenderHTML renders the lookbook template for a capsule
func (s *LookbookService) RenderHTML(ctx context.Context, result *models.CapsuleResult, embedImages bool) (string, error) {
	if result == nil {
		return "", fmt.Errorf("no capsule to render")
	}

	tmpl, err := template.ParseFiles(s.templatePath)
	if err != nil {
		metrics.LookbookRenders.WithLabelValues(string(LookbookHTML), "error").Inc()
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, s.buildLookbookData(ctx, result, embedImages)); err != nil {
		metrics.LookbookRenders.WithLabelValues(string(LookbookHTML), "error").Inc()
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	metrics.LookbookRenders.WithLabelValues(string(LookbookHTML), "ok").Inc()
	return buf.String(), nil
}

// GeneratePDF prints the rendered lookbook with headless Chrome
func (s *LookbookService) GeneratePDF(ctx context.Context, result *models.CapsuleResult) ([]byte, error) {
	htmlContent, err := s.RenderHTML(ctx, result, true)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox, // Required for running in Docker/containers
		chromedp.Flag("enable-print-preview", true),
	)
	if chromePath := detectChromePath(s.chromePath); chromePath != "" {
		opts = append(opts, chromedp.ExecPath(chromePath))
	} else {
		logging.Warn().Msg("⚠️  No Chrome installation found, letting chromedp auto-detect")
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	chromedpCtx, chromedpCancel := chromedp.NewContext(allocCtx)
	defer chromedpCancel()

	var pdfBuf []byte
	err = chromedp.Run(chromedpCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, htmlContent).Do(ctx)
		}),
		chromedp.WaitReady("body"),
		chromedp.Evaluate(`document.fonts.ready`, nil),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			// A4 portrait: 8.27" x 11.69"
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				WithMarginTop(0).
				WithMarginBottom(0).
				WithMarginLeft(0).
				WithMarginRight(0).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		metrics.LookbookRenders.WithLabelValues(string(LookbookPDF), "error").Inc()
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	metrics.LookbookRenders.WithLabelValues(string(LookbookPDF), "ok").Inc()
	logging.Info().Int("bytes", len(pdfBuf)).Int("items", len(result.Items)).Msg("📄 Lookbook PDF generated")
	return pdfBuf, nil
}
