package provider

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"sort"
	"strings"
	"time"
)

// ImageStore uploads profile images to an external media service.
type ImageStore interface {
	Upload(ctx context.Context, file io.Reader, filename string) (*UploadResult, error)
}

// UploadResult is a stored image reference: the serving URL plus the public
// id needed to address the asset later.
type UploadResult struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
}

// CloudinaryStore uploads to the Cloudinary REST API with signed requests.
type CloudinaryStore struct {
	baseURL   string
	cloudName string
	apiKey    string
	apiSecret string
	folder    string
	client    *http.Client
}

// NewCloudinaryStore creates a Cloudinary-backed image store.
func NewCloudinaryStore(cloudName, apiKey, apiSecret, folder string) *CloudinaryStore {
	return &CloudinaryStore{
		baseURL:   "https://api.cloudinary.com",
		cloudName: cloudName,
		apiKey:    apiKey,
		apiSecret: apiSecret,
		folder:    folder,
		client:    &http.Client{Timeout: 30 * time.Second},
	}
}

// NewCloudinaryStoreWithBase is NewCloudinaryStore with an overridable API
// base URL, for tests.
func NewCloudinaryStoreWithBase(baseURL, cloudName, apiKey, apiSecret, folder string) *CloudinaryStore {
	s := NewCloudinaryStore(cloudName, apiKey, apiSecret, folder)
	s.baseURL = strings.TrimSuffix(baseURL, "/")
	return s
}

type cloudinaryUploadResponse struct {
	PublicID  string `json:"public_id"`
	SecureURL string `json:"secure_url"`
	Error     struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Upload sends the file as a signed multipart upload and returns the stored
// reference.
func (s *CloudinaryStore) Upload(ctx context.Context, file io.Reader, filename string) (*UploadResult, error) {
	if s.cloudName == "" || s.apiKey == "" || s.apiSecret == "" {
		return nil, fmt.Errorf("cloudinary credentials not configured")
	}

	timestamp := fmt.Sprintf("%d", time.Now().Unix())
	params := map[string]string{
		"timestamp": timestamp,
	}
	if s.folder != "" {
		params["folder"] = s.folder
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range params {
		if err := mw.WriteField(k, v); err != nil {
			return nil, fmt.Errorf("write field: %w", err)
		}
	}
	if err := mw.WriteField("api_key", s.apiKey); err != nil {
		return nil, fmt.Errorf("write field: %w", err)
	}
	if err := mw.WriteField("signature", s.sign(params)); err != nil {
		return nil, fmt.Errorf("write field: %w", err)
	}
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("copy file: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("close multipart: %w", err)
	}

	url := fmt.Sprintf("%s/v1_1/%s/image/upload", s.baseURL, s.cloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cloudinary api call: %w", err)
	}
	defer resp.Body.Close()

	var out cloudinaryUploadResponse
	if err := decodeBody(resp.Body, &out); err != nil {
		return nil, fmt.Errorf("decode cloudinary response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cloudinary error (status %d): %s", resp.StatusCode, out.Error.Message)
	}

	return &UploadResult{URL: out.SecureURL, PublicID: out.PublicID}, nil
}

// sign computes the request signature: sorted key=value pairs joined with &,
// followed by the API secret, hashed with SHA-1.
func (s *CloudinaryStore) sign(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+params[k])
	}
	sum := sha1.Sum([]byte(strings.Join(pairs, "&") + s.apiSecret))
	return hex.EncodeToString(sum[:])
}
