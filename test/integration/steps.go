package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/cucumber/godog"

	"github.com/HehLul/HadeedInstitute-MVP/pkg/model"
	"github.com/HehLul/HadeedInstitute-MVP/pkg/server/endpoints"
	"github.com/HehLul/HadeedInstitute-MVP/pkg/server/store"
)

// StepsContext holds state shared between step definitions
type StepsContext struct {
	backend      Backend
	instance     *ServerInstance
	client       *http.Client
	formType     model.ResourceType
	response     *http.Response
	responseBody []byte
}

// NewStepsContext creates a new steps context
func NewStepsContext(backend Backend) *StepsContext {
	return &StepsContext{backend: backend}
}

// RegisterSteps registers all step definitions
func (s *StepsContext) RegisterSteps(sc *godog.ScenarioContext) {
	sc.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		return ctx, s.start(ctx)
	})
	sc.After(func(ctx context.Context, _ *godog.Scenario, err error) (context.Context, error) {
		if s.instance != nil {
			s.instance.Stop()
		}
		return ctx, nil
	})

	// Background steps
	sc.Step(`^a Hadeed server is running$`, s.aHadeedServerIsRunning)
	sc.Step(`^the following resources exist:$`, s.theFollowingResourcesExist)
	sc.Step(`^(\d+) reflections exist$`, s.reflectionsExist)
	sc.Step(`^the store rejects inserts$`, s.theStoreRejectsInserts)

	// Page steps
	sc.Step(`^I visit "([^"]*)"$`, s.iVisit)
	sc.Step(`^the page should show "([^"]*)"$`, s.thePageShouldShow)
	sc.Step(`^the page should not show "([^"]*)"$`, s.thePageShouldNotShow)
	sc.Step(`^"([^"]*)" should appear before "([^"]*)"$`, s.shouldAppearBefore)
	sc.Step(`^the title field should contain "([^"]*)"$`, s.theTitleFieldShouldContain)
	sc.Step(`^the title field should be empty$`, s.theTitleFieldShouldBeEmpty)

	// Form steps
	sc.Step(`^I open the share form$`, s.iOpenTheShareForm)
	sc.Step(`^I close the share form$`, s.iCloseTheShareForm)
	sc.Step(`^I choose the "([^"]*)" type$`, s.iChooseTheType)
	sc.Step(`^I submit the form with:$`, s.iSubmitTheFormWith)

	// Store steps
	sc.Step(`^the store should contain (\d+) resources?$`, s.theStoreShouldContain)
	sc.Step(`^the stored resource "([^"]*)" should have:$`, s.theStoredResourceShouldHave)

	// API steps
	sc.Step(`^I request "([^"]*)" from the API$`, s.iRequestFromTheAPI)
	sc.Step(`^the response status should be (\d+)$`, s.theResponseStatusShouldBe)
	sc.Step(`^the API should return (\d+) resources?$`, s.theAPIShouldReturn)
	sc.Step(`^the resources should be ordered newest first$`, s.theResourcesShouldBeOrderedNewestFirst)
	sc.Step(`^every resource should have type "([^"]*)"$`, s.everyResourceShouldHaveType)
}

func (s *StepsContext) start(ctx context.Context) error {
	instance, err := StartServer(ctx, s.backend)
	if err != nil {
		return fmt.Errorf("failed to start %s server: %w", s.backend.Name(), err)
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return err
	}
	s.instance = instance
	s.client = &http.Client{Jar: jar, Timeout: 10 * time.Second}
	s.formType = model.ResourceTypeReflection
	return nil
}

// Background steps

func (s *StepsContext) aHadeedServerIsRunning() error {
	// Server is already running, one per scenario
	return nil
}

func (s *StepsContext) theFollowingResourcesExist(table *godog.Table) error {
	rows, err := tableRecords(table)
	if err != nil {
		return err
	}
	for _, row := range rows {
		t, err := model.ParseResourceType(row["type"])
		if err != nil {
			return err
		}
		_, err = s.instance.Store.AddResource(context.Background(), model.ResourceInput{
			Title:  row["title"],
			Type:   t,
			Body:   row["body"],
			URL:    row["url"],
			Author: row["author"],
			Tags:   model.TagsFromString(row["tags"]),
		})
		if err != nil {
			return fmt.Errorf("failed to add %q: %w", row["title"], err)
		}
	}
	return nil
}

func (s *StepsContext) reflectionsExist(n int) error {
	for i := 1; i <= n; i++ {
		_, err := s.instance.Store.AddResource(context.Background(), model.ResourceInput{
			Title: fmt.Sprintf("Reflection %d", i),
			Type:  model.ResourceTypeReflection,
			Body:  "body",
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *StepsContext) theStoreRejectsInserts() error {
	s.instance.Store.rejectInserts.Store(true)
	return nil
}

// Page steps

func (s *StepsContext) do(req *http.Request) error {
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	s.response = resp
	s.responseBody, err = io.ReadAll(resp.Body)
	return err
}

func (s *StepsContext) iVisit(path string) error {
	req, err := http.NewRequest("GET", s.instance.ServerURL+path, nil)
	if err != nil {
		return err
	}
	return s.do(req)
}

func (s *StepsContext) post(path string, form url.Values) error {
	req, err := http.NewRequest("POST", s.instance.ServerURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	// the redirect lands on the home page
	return s.do(req)
}

func (s *StepsContext) thePageShouldShow(text string) error {
	if !strings.Contains(string(s.responseBody), text) {
		return fmt.Errorf("expected page to contain %q", text)
	}
	return nil
}

func (s *StepsContext) thePageShouldNotShow(text string) error {
	if strings.Contains(string(s.responseBody), text) {
		return fmt.Errorf("expected page not to contain %q", text)
	}
	return nil
}

func (s *StepsContext) shouldAppearBefore(first, second string) error {
	body := string(s.responseBody)
	i, j := strings.Index(body, first), strings.Index(body, second)
	if i == -1 || j == -1 {
		return fmt.Errorf("expected page to contain both %q and %q", first, second)
	}
	if i > j {
		return fmt.Errorf("expected %q before %q", first, second)
	}
	return nil
}

func (s *StepsContext) theTitleFieldShouldContain(value string) error {
	return s.thePageShouldShow(`name="title" value="` + value + `"`)
}

func (s *StepsContext) theTitleFieldShouldBeEmpty() error {
	return s.thePageShouldShow(`name="title" value=""`)
}

// Form steps

func (s *StepsContext) iOpenTheShareForm() error {
	return s.post("/share/open", nil)
}

func (s *StepsContext) iCloseTheShareForm() error {
	return s.post("/share/close", nil)
}

func (s *StepsContext) iChooseTheType(raw string) error {
	t, err := model.ParseResourceType(raw)
	if err != nil {
		return err
	}
	s.formType = t
	return s.post("/share/type", url.Values{"resource_type": {string(t)}})
}

func (s *StepsContext) iSubmitTheFormWith(table *godog.Table) error {
	form := url.Values{"resource_type": {string(s.formType)}}
	for _, row := range table.Rows {
		if len(row.Cells) != 2 {
			return fmt.Errorf("expected field | value rows")
		}
		form.Set(row.Cells[0].Value, row.Cells[1].Value)
	}
	return s.post("/share/submit", form)
}

// Store steps

func (s *StepsContext) stored() ([]model.Resource, error) {
	return s.instance.Store.GetResources(context.Background(), store.ListOptions{Limit: 1000})
}

func (s *StepsContext) theStoreShouldContain(n int) error {
	resources, err := s.stored()
	if err != nil {
		return err
	}
	if len(resources) != n {
		return fmt.Errorf("expected %d stored resources, got %d", n, len(resources))
	}
	return nil
}

func (s *StepsContext) theStoredResourceShouldHave(title string, table *godog.Table) error {
	resources, err := s.stored()
	if err != nil {
		return err
	}

	var found *model.Resource
	for i := range resources {
		if resources[i].Title == title {
			found = &resources[i]
			break
		}
	}
	if found == nil {
		return fmt.Errorf("no stored resource titled %q", title)
	}

	actual := map[string]string{
		"resource_type": string(found.ResourceType),
		"body":          found.Body,
		"description":   found.Description,
		"url":           found.URL,
		"author":        found.Author,
		"tags":          strings.Join(found.Tags, ", "),
	}
	for _, row := range table.Rows {
		field, want := row.Cells[0].Value, row.Cells[1].Value
		got, ok := actual[field]
		if !ok {
			return fmt.Errorf("unknown field %q", field)
		}
		if got != want {
			return fmt.Errorf("expected %s to be %q, got %q", field, want, got)
		}
	}
	return nil
}

// API steps

func (s *StepsContext) iRequestFromTheAPI(path string) error {
	req, err := http.NewRequest("GET", s.instance.ServerURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	return s.do(req)
}

func (s *StepsContext) theResponseStatusShouldBe(code int) error {
	if s.response.StatusCode != code {
		return fmt.Errorf("expected status %d, got %d: %s", code, s.response.StatusCode, string(s.responseBody))
	}
	return nil
}

func (s *StepsContext) apiResources() ([]endpoints.ResourceResponse, error) {
	var resources []endpoints.ResourceResponse
	if err := json.Unmarshal(s.responseBody, &resources); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return resources, nil
}

func (s *StepsContext) theAPIShouldReturn(n int) error {
	resources, err := s.apiResources()
	if err != nil {
		return err
	}
	if len(resources) != n {
		return fmt.Errorf("expected %d resources, got %d", n, len(resources))
	}
	return nil
}

func (s *StepsContext) theResourcesShouldBeOrderedNewestFirst() error {
	resources, err := s.apiResources()
	if err != nil {
		return err
	}
	for i := 1; i < len(resources); i++ {
		prev, err := time.Parse(time.RFC3339Nano, resources[i-1].CreatedAt)
		if err != nil {
			return err
		}
		cur, err := time.Parse(time.RFC3339Nano, resources[i].CreatedAt)
		if err != nil {
			return err
		}
		if cur.After(prev) {
			return fmt.Errorf("resource %d (%s) is newer than resource %d (%s)", i, resources[i].CreatedAt, i-1, resources[i-1].CreatedAt)
		}
	}
	return nil
}

func (s *StepsContext) everyResourceShouldHaveType(t string) error {
	resources, err := s.apiResources()
	if err != nil {
		return err
	}
	for _, r := range resources {
		if r.ResourceType != t {
			return fmt.Errorf("resource %q has type %q", r.Title, r.ResourceType)
		}
	}
	return nil
}

// tableRecords turns a table with a header row into maps
func tableRecords(table *godog.Table) ([]map[string]string, error) {
	if len(table.Rows) < 2 {
		return nil, fmt.Errorf("table needs a header and at least one row")
	}
	header := table.Rows[0].Cells
	records := make([]map[string]string, 0, len(table.Rows)-1)
	for _, row := range table.Rows[1:] {
		record := map[string]string{}
		for i, cell := range row.Cells {
			record[header[i].Value] = cell.Value
		}
		records = append(records, record)
	}
	return records, nil
}
