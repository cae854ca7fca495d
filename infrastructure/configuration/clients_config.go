package configuration

import (
	"encoding/json"
	"fmt"
	"os"
)

// YouTubeConfig is the resolved configuration for the video data client.
type YouTubeConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	AccessToken  string
	RefreshToken string
	ChannelID    string
	APIKey       string
}

// GetYouTubeConfig resolves YouTube credentials from config with environment
// fallback and, for tokens, a token.json produced by the OAuth callback.
func GetYouTubeConfig() (*YouTubeConfig, error) {
	port := C.App.Port
	if port == 0 {
		port = 10010
	}
	defaultRedirect := fmt.Sprintf("http://localhost:%d/auth/youtube/callback", port)
	config := &YouTubeConfig{
		ClientID:     getConfigValue(C.YouTube.ClientID, "YOUTUBE_CLIENT_ID", ""),
		ClientSecret: getConfigValue(C.YouTube.ClientSecret, "YOUTUBE_CLIENT_SECRET", ""),
		RedirectURL:  getConfigValue(C.YouTube.RedirectURI, "YOUTUBE_REDIRECT_URL", defaultRedirect),
		AccessToken:  os.Getenv("YOUTUBE_ACCESS_TOKEN"),
		RefreshToken: os.Getenv("YOUTUBE_REFRESH_TOKEN"),
		ChannelID:    getConfigValue(C.YouTube.ChannelID, "YOUTUBE_CHANNEL_ID", ""),
		APIKey:       getConfigValue(C.YouTube.APIKey, "YOUTUBE_API_KEY", ""),
	}

	if config.AccessToken == "" || config.RefreshToken == "" {
		if data, err := os.ReadFile("token.json"); err == nil {
			var tokenFile struct {
				AccessToken  string `json:"access_token"`
				RefreshToken string `json:"refresh_token"`
			}
			if jsonErr := json.Unmarshal(data, &tokenFile); jsonErr == nil {
				if config.AccessToken == "" {
					config.AccessToken = tokenFile.AccessToken
				}
				if config.RefreshToken == "" {
					config.RefreshToken = tokenFile.RefreshToken
				}
			}
		}
	}

	if config.APIKey == "" && config.AccessToken == "" {
		return nil, fmt.Errorf("youtube API key not configured: set YOUTUBE_API_KEY or complete the OAuth flow")
	}
	return config, nil
}

// GeminiConfig is the resolved configuration for the generative-AI client.
type GeminiConfig struct {
	APIKey string
	Model  string
}

// GetGeminiConfig resolves Gemini credentials from config with env fallback.
func GetGeminiConfig() (*GeminiConfig, error) {
	config := &GeminiConfig{
		APIKey: getConfigValue(C.Gemini.APIKey, "GEMINI_API_KEY", ""),
		Model:  getConfigValue(C.Gemini.Model, "GEMINI_MODEL", "gemini-2.5-flash"),
	}
	if config.APIKey == "" {
		return nil, fmt.Errorf("gemini API key not configured: set GEMINI_API_KEY")
	}
	return config, nil
}
