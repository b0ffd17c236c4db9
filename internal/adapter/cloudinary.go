package adapter

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/go-photo-share/internal/config"
	"github.com/MKhiriev/go-photo-share/internal/logger"
	"github.com/MKhiriev/go-photo-share/internal/utils"
	"github.com/MKhiriev/go-photo-share/models"
)

// destroyResult is the body of a successful destroy call.
type destroyResult struct {
	Result string `json:"result"`
}

type cloudinaryStorage struct {
	client *utils.HTTPClient

	cloudName       string
	apiKey          string
	apiSecret       string
	deliveryBaseURL string

	now func() time.Time

	logger *logger.Logger
}

// NewCloudinaryStorage constructs the Cloudinary implementation of
// [ObjectStorage]. Requests are signed with the API secret; the secret itself
// never leaves the process.
//
// When cfg.CloudName is empty a disabled storage is returned instead, so the
// API keeps working without avatar uploads.
func NewCloudinaryStorage(cfg config.ObjectStorage, logger *logger.Logger) (ObjectStorage, error) {
	if cfg.CloudName == "" {
		return NewDisabledStorage(), nil
	}
	if cfg.APIKey == "" || cfg.APISecret == "" {
		return nil, fmt.Errorf("object storage credentials are required for cloud %q", cfg.CloudName)
	}

	apiBase, err := normalizeBaseURL(cfg.APIBaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid object storage api url: %w", err)
	}
	deliveryBase, err := normalizeBaseURL(cfg.DeliveryBaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid object storage delivery url: %w", err)
	}

	return &cloudinaryStorage{
		client:          utils.NewHTTPClient(apiBase, cfg.RequestTimeout),
		cloudName:       cfg.CloudName,
		apiKey:          cfg.APIKey,
		apiSecret:       cfg.APISecret,
		deliveryBaseURL: deliveryBase,
		now:             time.Now,
		logger:          logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// Upload implements [ObjectStorage]. It POSTs the image as multipart form to
// /v1_1/{cloud}/image/upload with overwrite enabled.
func (c *cloudinaryStorage) Upload(ctx context.Context, r io.Reader, filename, publicID string) (models.UploadResult, error) {
	if publicID == "" {
		return models.UploadResult{}, ErrEmptyPublicID
	}
	if filename == "" {
		filename = "upload"
	}

	params := map[string]string{
		"public_id": publicID,
		"overwrite": "true",
		"timestamp": strconv.FormatInt(c.now().Unix(), 10),
	}

	var result models.UploadResult
	resp, err := c.client.R().
		SetContext(ctx).
		SetFileReader("file", filename, r).
		SetFormData(c.signed(params)).
		SetResult(&result).
		Post(c.endpoint("upload"))
	if err != nil {
		return models.UploadResult{}, fmt.Errorf("upload request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		c.logger.Err(err).Str("func", "*cloudinaryStorage.Upload").Str("public_id", publicID).Msg("image upload rejected")
		return models.UploadResult{}, err
	}
	if result.PublicID == "" {
		return models.UploadResult{}, ErrUnexpectedResult
	}

	return result, nil
}

// Destroy implements [ObjectStorage]. A "not found" result is treated as
// success.
func (c *cloudinaryStorage) Destroy(ctx context.Context, publicID string) error {
	if publicID == "" {
		return ErrEmptyPublicID
	}

	params := map[string]string{
		"public_id":  publicID,
		"invalidate": "true",
		"timestamp":  strconv.FormatInt(c.now().Unix(), 10),
	}

	var result destroyResult
	resp, err := c.client.R().
		SetContext(ctx).
		SetFormData(c.signed(params)).
		SetResult(&result).
		Post(c.endpoint("destroy"))
	if err != nil {
		return fmt.Errorf("destroy request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return err
	}

	switch result.Result {
	case "ok", "not found":
		return nil
	default:
		return fmt.Errorf("%w: destroy result %q", ErrUnexpectedResult, result.Result)
	}
}

// URL implements [ObjectStorage]. The layout is
// {delivery}/{cloud}/image/upload/{transformation}/v{version}/{public_id}.
func (c *cloudinaryStorage) URL(result models.UploadResult, t models.Transformation) string {
	parts := []string{c.deliveryBaseURL, c.cloudName, "image", "upload"}
	if tr := transformationString(t); tr != "" {
		parts = append(parts, tr)
	}
	if result.Version > 0 {
		parts = append(parts, "v"+strconv.FormatInt(result.Version, 10))
	}
	parts = append(parts, result.PublicID)

	return strings.Join(parts, "/")
}

func (c *cloudinaryStorage) endpoint(action string) string {
	return "/v1_1/" + url.PathEscape(c.cloudName) + "/image/" + action
}

// signed returns params extended with api_key and the request signature.
func (c *cloudinaryStorage) signed(params map[string]string) map[string]string {
	form := make(map[string]string, len(params)+2)
	for k, v := range params {
		form[k] = v
	}
	form["signature"] = sign(params, c.apiSecret)
	form["api_key"] = c.apiKey

	return form
}

// sign computes the Cloudinary request signature: the hex SHA-1 of the
// parameters sorted by name, joined as k=v with '&', followed by the secret.
func sign(params map[string]string, secret string) string {
	keys := make([]string, 0, len(params))
	for k, v := range params {
		if v == "" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+params[k])
	}

	sum := sha1.Sum([]byte(strings.Join(pairs, "&") + secret))
	return hex.EncodeToString(sum[:])
}

// transformationString renders t with components in alphabetical order,
// e.g. "c_fill,h_250,w_250".
func transformationString(t models.Transformation) string {
	var parts []string
	if t.Crop != "" {
		parts = append(parts, "c_"+t.Crop)
	}
	if t.Height > 0 {
		parts = append(parts, "h_"+strconv.Itoa(t.Height))
	}
	if t.Width > 0 {
		parts = append(parts, "w_"+strconv.Itoa(t.Width))
	}
	return strings.Join(parts, ",")
}
