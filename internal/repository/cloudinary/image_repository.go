package cloudinary

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"sedulurTani/pkg/logger"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Incoming images are capped to 1000x1000 with automatic quality and format.
const imageTransformation = "c_limit,h_1000,w_1000/q_auto/f_auto"

type CloudinaryConfig struct {
	CloudinaryBaseURL   string
	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
	CloudinaryFolder    string
}

// ImageRepository stores product images in Cloudinary through its REST API.
type ImageRepository struct {
	cloudinaryConfig CloudinaryConfig
	client           *http.Client
}

func NewImageRepository(cfg CloudinaryConfig) *ImageRepository {
	return &ImageRepository{
		cloudinaryConfig: cfg,
		client:           &http.Client{Timeout: 30 * time.Second},
	}
}

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
	PublicID  string `json:"public_id"`
}

// UploadImage pushes one image and returns its delivery URL.
func (r *ImageRepository) UploadImage(ctx context.Context, filename string, content []byte) (string, error) {
	timestamp := strconv.FormatInt(time.Now().Unix(), 10)

	params := map[string]string{
		"folder":         r.cloudinaryConfig.CloudinaryFolder,
		"timestamp":      timestamp,
		"transformation": imageTransformation,
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	for key, value := range params {
		if err := writer.WriteField(key, value); err != nil {
			return "", fmt.Errorf("failed to build upload form: %w", err)
		}
	}
	if err := writer.WriteField("api_key", r.cloudinaryConfig.CloudinaryAPIKey); err != nil {
		return "", fmt.Errorf("failed to build upload form: %w", err)
	}
	if err := writer.WriteField("signature", r.sign(params)); err != nil {
		return "", fmt.Errorf("failed to build upload form: %w", err)
	}

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("failed to build upload form: %w", err)
	}
	if _, err := part.Write(content); err != nil {
		return "", fmt.Errorf("failed to build upload form: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to build upload form: %w", err)
	}

	uploadURL := fmt.Sprintf("%s/v1_1/%s/image/upload", r.cloudinaryConfig.CloudinaryBaseURL, r.cloudinaryConfig.CloudinaryCloudName)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, uploadURL, &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	res, err := r.client.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		bodyBytes, _ := io.ReadAll(res.Body)
		logger.Warn("Cloudinary upload returned non-success response", "status", res.StatusCode, "body", string(bodyBytes))
		return "", fmt.Errorf("image store return negative response %v", res.StatusCode)
	}

	var uploaded uploadResponse
	if err := json.NewDecoder(res.Body).Decode(&uploaded); err != nil {
		return "", fmt.Errorf("failed to decode upload response: %w", err)
	}

	return uploaded.SecureURL, nil
}

// DeleteImage removes a previously uploaded image by its delivery URL.
func (r *ImageRepository) DeleteImage(ctx context.Context, imageURL string) error {
	publicID := extractPublicID(imageURL)
	if publicID == "" {
		return fmt.Errorf("cannot resolve public id from image url %q", imageURL)
	}

	timestamp := strconv.FormatInt(time.Now().Unix(), 10)
	params := map[string]string{
		"public_id": publicID,
		"timestamp": timestamp,
	}

	form := url.Values{}
	for key, value := range params {
		form.Set(key, value)
	}
	form.Set("api_key", r.cloudinaryConfig.CloudinaryAPIKey)
	form.Set("signature", r.sign(params))

	destroyURL := fmt.Sprintf("%s/v1_1/%s/image/destroy", r.cloudinaryConfig.CloudinaryBaseURL, r.cloudinaryConfig.CloudinaryCloudName)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, destroyURL, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := r.client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		bodyBytes, _ := io.ReadAll(res.Body)
		logger.Warn("Cloudinary destroy returned non-success response", "status", res.StatusCode, "body", string(bodyBytes))
		return fmt.Errorf("image store return negative response %v", res.StatusCode)
	}

	return nil
}

// sign builds the Cloudinary request signature: the parameters sorted by
// name, joined as a query string, suffixed with the API secret, SHA-1 hashed.
func (r *ImageRepository) sign(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, key := range keys {
		pairs = append(pairs, key+"="+params[key])
	}

	sum := sha1.Sum([]byte(strings.Join(pairs, "&") + r.cloudinaryConfig.CloudinaryAPISecret))

	return hex.EncodeToString(sum[:])
}

// extractPublicID recovers the public id from a delivery URL: everything
// after the "upload/<version>" segments, minus the file extension.
func extractPublicID(imageURL string) string {
	parts := strings.Split(imageURL, "/")

	uploadIndex := -1
	for i, part := range parts {
		if part == "upload" {
			uploadIndex = i
			break
		}
	}
	if uploadIndex == -1 || uploadIndex+2 >= len(parts) {
		return ""
	}

	fullPath := strings.Join(parts[uploadIndex+2:], "/")
	if dot := strings.LastIndex(fullPath, "."); dot != -1 {
		fullPath = fullPath[:dot]
	}

	return fullPath
}
