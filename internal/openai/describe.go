package openai

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// DescriptionInput carries the listing facts the simple description prompt
// is built from. Empty fields are omitted from the prompt.
type DescriptionInput struct {
	Title string
	Brand string
	Year  string
	Notes string
}

type responsesRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
}

type responsesResponse struct {
	Output []struct {
		Type    string `json:"type"`
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	} `json:"output"`
}

func (r *responsesResponse) outputText() string {
	var b strings.Builder
	for _, out := range r.Output {
		for _, content := range out.Content {
			if content.Type == "output_text" {
				b.WriteString(content.Text)
			}
		}
	}
	return b.String()
}

// GenerateListingDescription produces a short sales description from the
// item facts alone.
func (c *Client) GenerateListingDescription(input DescriptionInput) (string, error) {
	var facts []string
	if input.Title != "" {
		facts = append(facts, "Title: "+input.Title)
	}
	if input.Brand != "" {
		facts = append(facts, "Brand: "+input.Brand)
	}
	if input.Year != "" {
		facts = append(facts, "Year: "+input.Year)
	}
	if input.Notes != "" {
		facts = append(facts, "Notes: "+input.Notes)
	}

	prompt := "Write a concise, appealing auction listing description (2-3 sentences) for the following item. " +
		"Do not invent specifications that are not provided.\n" + strings.Join(facts, "\n")

	var resp responsesResponse
	if err := c.post("/responses", responsesRequest{Model: descriptionModel, Input: prompt}, &resp); err != nil {
		return "", err
	}

	text := strings.TrimSpace(resp.outputText())
	if text == "" {
		return "", fmt.Errorf("openai returned an empty description")
	}
	return text, nil
}

// VisionInput carries the item facts plus the photo the vision description
// is grounded on.
type VisionInput struct {
	Title     string
	Model     string
	Year      string
	Notes     string
	ImageData []byte
	MimeType  string
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature,omitempty"`
}

type chatMessage struct {
	Role    string        `json:"role"`
	Content []chatContent `json:"content"`
}

type chatContent struct {
	Type     string        `json:"type"`
	Text     string        `json:"text,omitempty"`
	ImageURL *chatImageURL `json:"image_url,omitempty"`
}

type chatImageURL struct {
	URL string `json:"url"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// DescribeItemImage produces a listing description grounded in the supplied
// photo. The image is sent inline as a data URI.
func (c *Client) DescribeItemImage(input VisionInput) (string, error) {
	var facts []string
	if input.Title != "" {
		facts = append(facts, "Title: "+input.Title)
	}
	if input.Model != "" {
		facts = append(facts, "Model: "+input.Model)
	}
	if input.Year != "" {
		facts = append(facts, "Year: "+input.Year)
	}
	if input.Notes != "" {
		facts = append(facts, "Seller notes: "+input.Notes)
	}

	prompt := "Look at this item photo and write a concise, appealing auction listing description (2-3 sentences). " +
		"Mention visible condition details. Do not invent specifications.\n" + strings.Join(facts, "\n")

	dataURI := fmt.Sprintf("data:%s;base64,%s", input.MimeType, base64.StdEncoding.EncodeToString(input.ImageData))

	req := chatRequest{
		Model:     visionModel,
		MaxTokens: 300,
		Messages: []chatMessage{
			{
				Role: "user",
				Content: []chatContent{
					{Type: "text", Text: prompt},
					{Type: "image_url", ImageURL: &chatImageURL{URL: dataURI}},
				},
			},
		},
	}

	var resp chatResponse
	if err := c.post("/chat/completions", req, &resp); err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai returned no choices")
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", fmt.Errorf("openai returned an empty description")
	}
	return text, nil
}
