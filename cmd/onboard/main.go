package main

// Drive an onboarding session against a running API from the terminal:
//   go run ./cmd/onboard -api http://localhost:8080/api/v1 -token $TOKEN \
//     -subject google:1234 -email me@example.com -phone 555-0100 -complete

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"candidate-onboarding/internal/apiclient"
	"candidate-onboarding/internal/onboarding"
	"candidate-onboarding/internal/profile"
)

func main() {
	var (
		apiURL  = flag.String("api", "http://localhost:8080/api/v1", "API base URL")
		token   = flag.String("token", os.Getenv("ONBOARD_TOKEN"), "bearer token")
		subject = flag.String("subject", "", "identity subject, e.g. google:1234")
		email   = flag.String("email", "", "identity email")
		name    = flag.String("name", "", "identity full name")
		avatar  = flag.String("avatar", "", "identity avatar URL")

		phone     = flag.String("phone", "", "draft: phone")
		location  = flag.String("location", "", "draft: location")
		title     = flag.String("title", "", "draft: current title")
		company   = flag.String("company", "", "draft: current company")
		jobTypes  = flag.String("job-types", "", "draft: comma-separated desired job types")
		minSalary = flag.Int("min-salary", -1, "draft: desired salary min")
		maxSalary = flag.Int("max-salary", -1, "draft: desired salary max")

		resumePath   = flag.String("resume", "", "path of a resume file to upload")
		removeResume = flag.Bool("remove-resume", false, "remove the attached resume")
		skip         = flag.Bool("skip", false, "skip onboarding")
		complete     = flag.Bool("complete", false, "complete onboarding with the draft")
		timeout      = flag.Duration("timeout", 30*time.Second, "overall timeout")
	)
	flag.Parse()

	if *token == "" {
		log.Fatal("a bearer token is required (-token or ONBOARD_TOKEN)")
	}
	if *subject == "" {
		log.Fatal("-subject is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	client := apiclient.New(*apiURL, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: *token}))
	svc := onboarding.NewService(client, client)

	ident := onboarding.Identity{
		Subject:   *subject,
		Email:     *email,
		FullName:  *name,
		AvatarURL: *avatar,
	}

	res, err := svc.Resolve(ctx, ident)
	if err != nil {
		log.Fatalf("resolve session: %v", err)
	}
	fmt.Printf("record %s (created=%v, status=%s)\n", res.Record.ID, res.Created, res.Record.OnboardingStatus)

	patch := buildDraftPatch(*phone, *location, *title, *company, *jobTypes, *minSalary, *maxSalary)
	if patch != nil {
		svc.UpdateDraft(*patch)
	}

	if *resumePath != "" {
		data, err := os.ReadFile(*resumePath)
		if err != nil {
			log.Fatalf("read resume: %v", err)
		}
		fileName := filepath.Base(*resumePath)
		if err := svc.SelectFile(ctx, fileName, mimeForFile(fileName), data); err != nil {
			log.Fatalf("upload resume: %v", err)
		}
	}

	if *removeResume {
		svc.RemoveFile(ctx)
	}

	switch {
	case *skip:
		if err := svc.Skip(ctx); err != nil {
			log.Fatalf("skip onboarding: %v", err)
		}
	case *complete:
		if err := svc.Complete(ctx); err != nil {
			log.Fatalf("complete onboarding: %v", err)
		}
	}

	printSession(svc.Session())
}

func buildDraftPatch(phone, location, title, company, jobTypes string, minSalary, maxSalary int) *onboarding.DraftPatch {
	var p onboarding.DraftPatch
	touched := false

	setString := func(dst **string, v string) {
		if v != "" {
			val := v
			*dst = &val
			touched = true
		}
	}
	setString(&p.Phone, phone)
	setString(&p.Location, location)
	setString(&p.CurrentTitle, title)
	setString(&p.CurrentCompany, company)

	if jobTypes != "" {
		var types []string
		for _, t := range strings.Split(jobTypes, ",") {
			if trimmed := strings.TrimSpace(t); trimmed != "" {
				types = append(types, trimmed)
			}
		}
		p.DesiredJobTypes = &types
		touched = true
	}
	if minSalary >= 0 {
		v := minSalary
		p.DesiredSalaryMin = &v
		touched = true
	}
	if maxSalary >= 0 {
		v := maxSalary
		p.DesiredSalaryMax = &v
		touched = true
	}

	if !touched {
		return nil
	}
	return &p
}

func mimeForFile(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return "application/pdf"
	case ".doc":
		return "application/msword"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	default:
		return "text/plain"
	}
}

func printSession(sess onboarding.Session) {
	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		log.Fatalf("encode session: %v", err)
	}
	fmt.Println(string(data))
	if max := sess.Draft.DesiredSalaryMax; max != nil && profile.IsUnboundedSalary(*max) {
		fmt.Println("desired salary max: no maximum")
	}
}
