package controller

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"matrimony-service/errs"
	"matrimony-service/model"

	"github.com/gofiber/fiber/v2"
)

type ChatbotInput struct {
	Message string `json:"message"`
}

type faqEntry struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

var (
	faqs     []faqEntry
	faqsOnce sync.Once
)

func loadFaqs() {
	faqsOnce.Do(func() {
		raw, err := os.ReadFile("faqs.json")
		if err != nil {
			log.Printf("chatbot: faqs.json not loaded: %v", err)
			return
		}
		if err := json.Unmarshal(raw, &faqs); err != nil {
			log.Printf("chatbot: faqs.json malformed: %v", err)
		}
	})
}

var (
	bridePattern = regexp.MustCompile(`brides?.*from ([\w\s]+).*age (\d+)(?: to (\d+))?`)
	groomPattern = regexp.MustCompile(`grooms?.*from ([\w\s]+).*age (\d+)(?: to (\d+))?`)
)

type profileQuery struct {
	kind   model.Kind
	city   string
	ageMin int
	ageMax int
}

// parseProfileQuery recognizes "brides from <city> age <min>[ to <max>]"
// questions.
func parseProfileQuery(msg string) (*profileQuery, bool) {
	kind := model.KindBride
	m := bridePattern.FindStringSubmatch(msg)
	if m == nil {
		kind = model.KindGroom
		m = groomPattern.FindStringSubmatch(msg)
	}
	if m == nil {
		return nil, false
	}

	words := strings.Fields(m[1])
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}

	q := &profileQuery{kind: kind, city: strings.Join(words, " ")}
	q.ageMin, _ = strconv.Atoi(m[2])
	q.ageMax = q.ageMin
	if m[3] != "" {
		q.ageMax, _ = strconv.Atoi(m[3])
	}
	return q, true
}

// Chatbot answers FAQ questions verbatim and profile queries from the store;
// everything else gets the canned fallback.
func Chatbot(c *fiber.Ctx) error {
	loadFaqs()

	in := new(ChatbotInput)
	if err := c.BodyParser(in); err != nil {
		return fail(c, errs.New(errs.CodeInvalidArgument, "invalid request body"))
	}

	msg := strings.ToLower(strings.TrimSpace(in.Message))
	if msg == "" {
		return ok(c, fiber.Map{"reply": "Please enter a message."})
	}

	for _, faq := range faqs {
		if msg == strings.ToLower(strings.TrimSpace(faq.Question)) {
			return ok(c, fiber.Map{"reply": faq.Answer})
		}
	}

	if q, matched := parseProfileQuery(msg); matched {
		results, err := svc.SearchProfiles(q.kind, q.city, q.ageMin, q.ageMax)
		if err != nil {
			return fail(c, err)
		}
		if len(results) == 0 {
			return ok(c, fiber.Map{"reply": fmt.Sprintf("No %ss found matching your criteria.", q.kind)})
		}

		lines := make([]string, 0, len(results))
		for _, p := range results {
			lines = append(lines, fmt.Sprintf("%s, Age: %d, City: %s, Profession: %s, Education: %s",
				p.FullName, p.Age, p.City, p.Profession, p.Education))
		}
		return ok(c, fiber.Map{"reply": strings.Join(lines, "\n")})
	}

	return ok(c, fiber.Map{"reply": "Sorry, I couldn't understand your query."})
}
