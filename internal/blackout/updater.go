package blackout

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"regexp"
	"strconv"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/wildpass/flightsearch/internal/models"
)

const (
	sourceURL          = "https://www.flyfrontier.com/frontiermiles/terms-and-conditions/#GoWild!_Pass"
	updateIntervalDays = 30
)

// Data is what the updater persists and what /api/blackout-dates serves.
type Data struct {
	LastUpdated     string                             `json:"last_updated"`
	BlackoutPeriods map[string][]models.BlackoutPeriod `json:"blackout_periods"`
	Source          string                             `json:"source"`
}

// Updater keeps the blackout calendar current: it caches fetched periods
// to a JSON file and re-fetches from the terms page at most once per
// interval. Fetch failures fall back to the cached or built-in data.
type Updater struct {
	cacheFile string
	client    *http.Client
	log       *logrus.Logger

	mu   sync.RWMutex
	data Data
}

func NewUpdater(cacheFile string, log *logrus.Logger) *Updater {
	return &Updater{
		cacheFile: cacheFile,
		client:    &http.Client{Timeout: 30 * time.Second},
		log:       log,
	}
}

// Load initializes the updater from the cache file, or from the built-in
// fallback periods when no cache exists. Called once on startup.
func (u *Updater) Load() {
	u.mu.Lock()
	defer u.mu.Unlock()

	if raw, err := os.ReadFile(u.cacheFile); err == nil {
		var d Data
		if err := json.Unmarshal(raw, &d); err == nil && len(d.BlackoutPeriods) > 0 {
			u.data = d
			return
		}
	}
	u.data = fallbackData()
	u.persistLocked()
}

// Calendar returns the current calendar for evaluation.
func (u *Updater) Calendar() Calendar {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return Calendar{Periods: u.data.BlackoutPeriods}
}

// Evaluate annotates travel dates against the current calendar.
func (u *Updater) Evaluate(departureDate string, returnDate *string) models.BlackoutAnnotation {
	return u.Calendar().Evaluate(departureDate, returnDate)
}

// Current returns the full dataset including the last-updated stamp.
func (u *Updater) Current() Data {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.data
}

// UpdateIfNeeded refreshes from the terms page when the cached data is
// older than the update interval.
func (u *Updater) UpdateIfNeeded() {
	u.mu.RLock()
	last, err := time.Parse(time.RFC3339, u.data.LastUpdated)
	u.mu.RUnlock()
	if err == nil && time.Since(last) < updateIntervalDays*24*time.Hour {
		return
	}
	if _, err := u.Refresh(); err != nil {
		u.log.WithError(err).Warn("blackout refresh failed, keeping cached data")
	}
}

// Refresh fetches and re-parses the blackout periods, persisting them on
// success.
func (u *Updater) Refresh() (Data, error) {
	req, err := http.NewRequest(http.MethodGet, sourceURL, nil)
	if err != nil {
		return u.Current(), err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36")

	resp, err := u.client.Do(req)
	if err != nil {
		return u.Current(), err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return u.Current(), fmt.Errorf("blackout source returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return u.Current(), err
	}

	periods := parsePeriods(string(body))
	total := 0
	for _, ps := range periods {
		total += len(ps)
	}
	if total == 0 {
		return u.Current(), fmt.Errorf("no blackout periods found in source page")
	}

	d := Data{
		LastUpdated:     time.Now().Format(time.RFC3339),
		BlackoutPeriods: periods,
		Source:          sourceURL,
	}

	u.mu.Lock()
	u.data = d
	u.persistLocked()
	u.mu.Unlock()

	u.log.WithField("periods", total).Info("blackout dates refreshed")
	return d, nil
}

func (u *Updater) persistLocked() {
	raw, err := json.MarshalIndent(u.data, "", "  ")
	if err != nil {
		return
	}
	if err := os.WriteFile(u.cacheFile, raw, 0o644); err != nil {
		u.log.WithError(err).Warn("failed to write blackout cache file")
	}
}

var (
	yearSection = regexp.MustCompile(`(20\d{2})`)
	dateRange   = regexp.MustCompile(`(January|February|March|April|May|June|July|August|September|October|November|December)\s+(\d{1,2})(?:\s*[-–]\s*(\d{1,2}))?`)
	monthNums   = map[string]int{
		"January": 1, "February": 2, "March": 3, "April": 4,
		"May": 5, "June": 6, "July": 7, "August": 8,
		"September": 9, "October": 10, "November": 11, "December": 12,
	}
)

// parsePeriods scans page text for year headings followed by
// "Month D" or "Month D-D" ranges. Deliberately tolerant: anything it
// cannot read is skipped rather than failing the refresh.
func parsePeriods(text string) map[string][]models.BlackoutPeriod {
	out := make(map[string][]models.BlackoutPeriod)

	yearIdx := yearSection.FindAllStringSubmatchIndex(text, -1)
	for i, loc := range yearIdx {
		year := text[loc[2]:loc[3]]
		end := len(text)
		if i+1 < len(yearIdx) {
			end = yearIdx[i+1][0]
		}
		section := text[loc[1]:end]

		for _, m := range dateRange.FindAllStringSubmatch(section, -1) {
			month := monthNums[m[1]]
			startDay, _ := strconv.Atoi(m[2])
			endDay := startDay
			if m[3] != "" {
				endDay, _ = strconv.Atoi(m[3])
			}
			if month == 0 || startDay == 0 || endDay < startDay {
				continue
			}
			out[year] = append(out[year], models.BlackoutPeriod{
				Start:       fmt.Sprintf("%s-%02d-%02d", year, month, startDay),
				End:         fmt.Sprintf("%s-%02d-%02d", year, month, endDay),
				Description: m[1] + " Period",
			})
		}
	}
	return out
}

func fallbackData() Data {
	return Data{
		LastUpdated:     time.Now().Format(time.RFC3339),
		BlackoutPeriods: fallbackPeriods,
		Source:          "fallback",
	}
}
