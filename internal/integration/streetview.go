package integration

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"georeview/internal/models"

	"golang.org/x/sync/errgroup"
)

const (
	streetViewClient = "maps_sv.tactile"
	maxImageBytes    = 10 * 1024 * 1024
)

type Logger interface {
	Error(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Info(format string, v ...interface{})
	Debug(format string, v ...interface{})
}

// ImageOptimizer re-encodes raw image bytes before they are sent upstream.
type ImageOptimizer interface {
	OptimizeForAI(data []byte) ([]byte, error)
}

type StreetViewConfig struct {
	BaseURL        string        `env:"BASE_URL" envDefault:"https://streetviewpixels-pa.googleapis.com/v1/thumbnail"`
	Width          int           `env:"WIDTH" envDefault:"1600"`
	NarrowHeight   int           `env:"NARROW_HEIGHT" envDefault:"1300"`
	StandardHeight int           `env:"STANDARD_HEIGHT" envDefault:"1600"`
	Timeout        time.Duration `env:"TIMEOUT" envDefault:"20s"`
	MaxWidth       int           `env:"MAX_WIDTH" envDefault:"1000"`
}

// ViewRequest identifies the panorama and camera reference for one round.
type ViewRequest struct {
	PanoID  string
	Narrow  bool
	Heading float64
	Pitch   float64
}

// ViewSet is the partial result of a round's fan-out. Images keeps the
// view order of ViewsFor, skipping views that failed.
type ViewSet struct {
	Images  []models.Image
	Missing []string
}

func (v ViewSet) Complete() bool {
	return len(v.Missing) == 0
}

type StreetViewClient struct {
	cfg        StreetViewConfig
	httpClient *http.Client
	optimizer  ImageOptimizer
	logger     Logger
}

func NewStreetViewClient(cfg StreetViewConfig, optimizer ImageOptimizer, logger Logger) *StreetViewClient {
	return &StreetViewClient{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		optimizer:  optimizer,
		logger:     logger,
	}
}

// FetchViews downloads every view of the round in parallel. A failed view
// is dropped and listed in Missing; it never cancels its siblings.
func (c *StreetViewClient) FetchViews(ctx context.Context, req ViewRequest) ViewSet {
	views := ViewsFor(req.Narrow, req.Heading, req.Pitch)
	height := c.cfg.StandardHeight
	if req.Narrow {
		height = c.cfg.NarrowHeight
	}

	images := make([]*models.Image, len(views))
	var g errgroup.Group
	for i, view := range views {
		g.Go(func() error {
			img, err := c.fetchView(ctx, req.PanoID, view, height)
			if err != nil {
				c.logger.Debug("dropping %s view of %s: %v", view.Name, req.PanoID, err)
				return nil
			}
			images[i] = &img
			return nil
		})
	}
	_ = g.Wait()

	var set ViewSet
	for i, img := range images {
		if img == nil {
			set.Missing = append(set.Missing, views[i].Name)
			continue
		}
		set.Images = append(set.Images, *img)
	}
	return set
}

func (c *StreetViewClient) viewURL(panoID string, view View, height int) string {
	q := url.Values{}
	q.Set("cb_client", streetViewClient)
	q.Set("w", strconv.Itoa(c.cfg.Width))
	q.Set("h", strconv.Itoa(height))
	q.Set("panoid", panoID)
	q.Set("yaw", formatAngle(view.Yaw))
	q.Set("pitch", formatAngle(view.Pitch))
	return c.cfg.BaseURL + "?" + q.Encode()
}

func (c *StreetViewClient) fetchView(ctx context.Context, panoID string, view View, height int) (models.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.viewURL(panoID, view, height), nil)
	if err != nil {
		return models.Image{}, fmt.Errorf("%w: %v", models.ErrImageFetch, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return models.Image{}, fmt.Errorf("%w: %v", models.ErrImageFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.Image{}, fmt.Errorf("%w: status %d", models.ErrImageFetch, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return models.Image{}, fmt.Errorf("%w: read body: %v", models.ErrImageFetch, err)
	}
	if len(data) == 0 {
		return models.Image{}, fmt.Errorf("%w: empty body", models.ErrImageFetch)
	}

	if c.optimizer != nil {
		data, err = c.optimizer.OptimizeForAI(data)
		if err != nil {
			return models.Image{}, fmt.Errorf("%w: %v", models.ErrImageFetch, err)
		}
	}

	return models.Image{View: view.Name, MIMEType: models.ImageMIMEType, Data: data}, nil
}

func formatAngle(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
