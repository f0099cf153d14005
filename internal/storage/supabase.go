package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"asociacion-backend/internal/config"
)

// SupabaseClient habla el protocolo REST del almacenamiento hospedado
// (/storage/v1/object/...). Se autentica con la service key del proyecto.
type SupabaseClient struct {
	baseURL    string
	serviceKey string
	httpClient *http.Client
}

func NewSupabaseClient(cfg *config.Config) *SupabaseClient {
	return &SupabaseClient{
		baseURL:    strings.TrimRight(cfg.StorageBaseURL, "/"),
		serviceKey: cfg.StorageServiceKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (s *SupabaseClient) objectURL(bucket, path string) string {
	return fmt.Sprintf("%s/storage/v1/object/%s/%s", s.baseURL, bucket, path)
}

func (s *SupabaseClient) PublicURL(bucket, path string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", s.baseURL, bucket, path)
}

func (s *SupabaseClient) Upload(ctx context.Context, bucket, path string, r io.Reader, contentType string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.objectURL(bucket, path), r)
	if err != nil {
		return "", fmt.Errorf("no se pudo crear la petición de subida: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.serviceKey)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fallo la subida al bucket %s: %w", bucket, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("el almacenamiento respondió %d al subir a %s: %s", resp.StatusCode, bucket, strings.TrimSpace(string(body)))
	}

	return s.PublicURL(bucket, path), nil
}

func (s *SupabaseClient) Remove(ctx context.Context, bucket, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, s.objectURL(bucket, path), nil)
	if err != nil {
		return fmt.Errorf("no se pudo crear la petición de borrado: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.serviceKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("fallo el borrado en el bucket %s: %w", bucket, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("el almacenamiento respondió %d al borrar de %s: %s", resp.StatusCode, bucket, strings.TrimSpace(string(body)))
	}

	return nil
}
