package gdrive

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// Client wraps the Google Drive API service for read-only text fetches.
type Client struct {
	service *drive.Service
}

// NewClientFromCredentialsFile creates a Drive client from a Service Account JSON file path.
func NewClientFromCredentialsFile(ctx context.Context, credentialsPath string) (*Client, error) {
	data, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}
	return NewClientFromCredentialsJSON(ctx, data)
}

// NewClientFromCredentialsJSON creates a Drive client from raw credential JSON bytes.
func NewClientFromCredentialsJSON(ctx context.Context, credentialsJSON []byte) (*Client, error) {
	// Try service account first
	config, err := google.JWTConfigFromJSON(credentialsJSON, drive.DriveReadonlyScope)
	if err == nil {
		svc, svcErr := drive.NewService(ctx, option.WithTokenSource(config.TokenSource(ctx)))
		if svcErr != nil {
			return nil, fmt.Errorf("failed to create drive service: %w", svcErr)
		}
		return &Client{service: svc}, nil
	}

	// Fallback: OAuth2 installed app credentials with a stored token.json
	var oauthCreds struct {
		Installed struct {
			ClientID     string   `json:"client_id"`
			ClientSecret string   `json:"client_secret"`
			RedirectURIs []string `json:"redirect_uris"`
		} `json:"installed"`
	}
	if jsonErr := json.Unmarshal(credentialsJSON, &oauthCreds); jsonErr != nil {
		return nil, fmt.Errorf("unsupported credentials format: %w", err)
	}

	oauthConfig := &oauth2.Config{
		ClientID:     oauthCreds.Installed.ClientID,
		ClientSecret: oauthCreds.Installed.ClientSecret,
		Scopes:       []string{drive.DriveReadonlyScope},
		Endpoint:     google.Endpoint,
	}

	tokenData, tokenErr := os.ReadFile("token.json")
	if tokenErr != nil {
		return nil, fmt.Errorf("google credentials are OAuth Desktop type but no token.json found: use Service Account instead")
	}

	var tok oauth2.Token
	if jsonErr := json.Unmarshal(tokenData, &tok); jsonErr != nil {
		return nil, fmt.Errorf("failed to parse token.json: %w", jsonErr)
	}

	svc, svcErr := drive.NewService(ctx, option.WithTokenSource(oauthConfig.TokenSource(ctx, &tok)))
	if svcErr != nil {
		return nil, fmt.Errorf("failed to create drive service from OAuth token: %w", svcErr)
	}

	return &Client{service: svc}, nil
}

// FetchText downloads a Drive file as plain text.
// Google Docs are exported as text/plain; everything else is downloaded raw.
func (c *Client) FetchText(ctx context.Context, fileID string) (*File, error) {
	meta, err := c.service.Files.Get(fileID).Fields("id", "name", "mimeType").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch drive file metadata: %w", err)
	}

	var body io.ReadCloser
	if strings.HasPrefix(meta.MimeType, "application/vnd.google-apps.") {
		resp, expErr := c.service.Files.Export(fileID, "text/plain").Context(ctx).Download()
		if expErr != nil {
			return nil, fmt.Errorf("failed to export drive file %s: %w", fileID, expErr)
		}
		body = resp.Body
	} else {
		resp, dlErr := c.service.Files.Get(fileID).Context(ctx).Download()
		if dlErr != nil {
			return nil, fmt.Errorf("failed to download drive file %s: %w", fileID, dlErr)
		}
		body = resp.Body
	}
	defer body.Close()

	content, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("failed to read drive file %s: %w", fileID, err)
	}

	return &File{
		ID:      meta.Id,
		Name:    meta.Name,
		Content: string(content),
	}, nil
}
