package controller

import (
	"fmt"
	"regexp"
	"time"

	"matrimony-service/config"
	"matrimony-service/errs"

	"github.com/go-resty/resty/v2"
	"github.com/gofiber/fiber/v2"
)

type KundliPerson struct {
	Name  string `json:"name"`
	Dob   string `json:"dob"`
	Time  string `json:"time"`
	Place string `json:"place"`
}

type KundliInput struct {
	Groom KundliPerson `json:"groom"`
	Bride KundliPerson `json:"bride"`
}

type groqRequest struct {
	Model    string        `json:"model"`
	Messages []groqMessage `json:"messages"`
}

type groqMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type groqResponse struct {
	Choices []struct {
		Message groqMessage `json:"message"`
	} `json:"choices"`
}

const groqEndpoint = "https://api.groq.com/openai/v1/chat/completions"

var scorePattern = regexp.MustCompile(`(\d{1,2})\s*/\s*36`)

var kundliClient = resty.New().SetTimeout(30 * time.Second)

const kundliPrompt = `Act as a professional Indian Vedic astrologer with expertise in Kundali Milan using the Ashta Koota system.
Provide a detailed Kundali Milan report with an assumed Guna Milan score out of 36.

Details:
Groom:
- Name: %s
- Date of Birth: %s
- Time of Birth: %s
- Place of Birth: %s

Bride:
- Name: %s
- Date of Birth: %s
- Time of Birth: %s
- Place of Birth: %s

Output format:
1. Guna Milan Score: XX / 36
2. Love Compatibility
3. Health Alignment
4. Family Life Outlook
5. Planetary Influence
6. Doshas Found and Remedies
7. Advice for Relationship Harmony`

// KundliMatch relays an astrological compatibility request to the Groq API
// and extracts the Guna Milan score from the report. Thin prompt relay only;
// no retries beyond the client timeout.
func KundliMatch(c *fiber.Ctx) error {
	apiKey := config.Config("GROQ_API_KEY")
	if apiKey == "" {
		return fail(c, errs.New(errs.CodeInvalidArgument, "GROQ_API_KEY not configured"))
	}

	in := new(KundliInput)
	if err := c.BodyParser(in); err != nil {
		return fail(c, errs.New(errs.CodeInvalidArgument, "invalid request body"))
	}

	prompt := fmt.Sprintf(kundliPrompt,
		in.Groom.Name, in.Groom.Dob, in.Groom.Time, in.Groom.Place,
		in.Bride.Name, in.Bride.Dob, in.Bride.Time, in.Bride.Place,
	)

	out := new(groqResponse)
	resp, err := kundliClient.R().
		SetAuthToken(apiKey).
		SetBody(groqRequest{
			Model: "llama-3.1-8b-instant",
			Messages: []groqMessage{
				{Role: "system", Content: "You are a Kundli matching expert."},
				{Role: "user", Content: prompt},
			},
		}).
		SetResult(out).
		Post(groqEndpoint)
	if err != nil {
		return fail(c, errs.Wrap(err, errs.CodeStorage, "kundli request failed"))
	}
	if resp.IsError() || len(out.Choices) == 0 {
		return fail(c, errs.Newf(errs.CodeStorage, "kundli request failed: %s", resp.Status()))
	}

	report := out.Choices[0].Message.Content
	score := "N/A"
	if m := scorePattern.FindStringSubmatch(report); m != nil {
		score = m[1]
	}

	return ok(c, fiber.Map{
		"full_report": report,
		"score":       score,
	})
}
