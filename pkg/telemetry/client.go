package telemetry

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"f1racepredictor/pkg/caster"
	"f1racepredictor/pkg/helper"
	"f1racepredictor/pkg/model"
	"f1racepredictor/pkg/tracks"
)

const (
	DefaultAPIDomain = "https://api.openf1.org"

	raceSessionName = "Race"
	emptyList       = "[]"
)

type Options struct {
	APIDomain string
	// CacheDir enables the response cache when not empty.
	CacheDir   string
	HTTPClient *http.Client
	Log        *logrus.Entry
}

// Client reads historical race data from the OpenF1 API.
type Client struct {
	apiDomain string
	http      *http.Client
	cache     *Cache
	log       *logrus.Entry

	sessionsCaster caster.Caster[[]session]
	driversCaster  caster.Caster[[]driver]
	lapsCaster     caster.Caster[[]lap]
}

type session struct {
	SessionKey       int    `json:"session_key"`
	SessionName      string `json:"session_name"`
	Year             int    `json:"year"`
	CircuitShortName string `json:"circuit_short_name"`
	DateStart        string `json:"date_start"`
}

type driver struct {
	DriverNumber int    `json:"driver_number"`
	NameAcronym  string `json:"name_acronym"`
	FullName     string `json:"full_name"`
}

type lap struct {
	DriverNumber    int      `json:"driver_number"`
	LapNumber       int      `json:"lap_number"`
	LapDuration     *float64 `json:"lap_duration"`
	DurationSector1 *float64 `json:"duration_sector_1"`
	DurationSector2 *float64 `json:"duration_sector_2"`
	DurationSector3 *float64 `json:"duration_sector_3"`
}

func NewClient(opts Options) (*Client, error) {
	c := &Client{
		apiDomain:      opts.APIDomain,
		http:           opts.HTTPClient,
		log:            opts.Log,
		sessionsCaster: caster.JSONCaster[[]session]{},
		driversCaster:  caster.JSONCaster[[]driver]{},
		lapsCaster:     caster.JSONCaster[[]lap]{},
	}
	if c.apiDomain == "" {
		c.apiDomain = DefaultAPIDomain
	}
	if c.http == nil {
		c.http = http.DefaultClient
	}
	if c.log == nil {
		c.log = logrus.NewEntry(logrus.StandardLogger())
	}
	if opts.CacheDir != "" {
		cache, err := OpenCache(opts.CacheDir)
		if err != nil {
			return nil, err
		}
		c.cache = cache
	}
	return c, nil
}

func (c *Client) Close() error {
	if c.cache == nil {
		return nil
	}
	return c.cache.Close()
}

// FetchRaceLaps loads every complete lap of the track's race held in year.
func (c *Client) FetchRaceLaps(ctx context.Context, year int, track tracks.Track) Result {
	res := Result{Year: year}

	s, err := c.raceSession(ctx, year, track)
	if err != nil {
		res.Err = err
		return res
	}

	codes, err := c.driverCodes(ctx, s.SessionKey)
	if err != nil {
		res.Err = err
		return res
	}

	laps, err := c.sessionLaps(ctx, s.SessionKey)
	if err != nil {
		res.Err = err
		return res
	}

	res.Laps = toLapSamples(year, laps, codes)
	if len(res.Laps) == 0 {
		res.Err = errors.Wrapf(ErrNoLaps, "session %d", s.SessionKey)
	}
	c.log.WithFields(logrus.Fields{
		"year":    year,
		"track":   track.Name,
		"session": s.SessionKey,
		"laps":    len(res.Laps),
		"dropped": len(laps) - len(res.Laps),
	}).Debug("race laps loaded")
	return res
}

func (c *Client) raceSession(ctx context.Context, year int, track tracks.Track) (session, error) {
	q := url.Values{}
	q.Set("year", strconv.Itoa(year))
	q.Set("circuit_short_name", track.Circuit)
	q.Set("session_name", raceSessionName)
	body, err := c.get(ctx, "/v1/sessions", q)
	if err != nil {
		return session{}, err
	}
	ss, err := c.sessionsCaster.From(body)
	if err != nil {
		return session{}, errors.Wrap(ErrBadResponse, err.Error())
	}

	// oldest first so a rescheduled race doesn't shadow the original one
	sort.SliceStable(ss, func(i, j int) bool {
		return ss[i].DateStart < ss[j].DateStart
	})
	for _, s := range ss {
		if s.SessionName == raceSessionName && s.Year == year {
			return s, nil
		}
	}
	return session{}, errors.Wrapf(ErrSessionNotFound, "%s %d", track.Name, year)
}

func (c *Client) driverCodes(ctx context.Context, sessionKey int) (map[int]string, error) {
	q := url.Values{}
	q.Set("session_key", strconv.Itoa(sessionKey))
	body, err := c.get(ctx, "/v1/drivers", q)
	if err != nil {
		return nil, err
	}
	ds, err := c.driversCaster.From(body)
	if err != nil {
		return nil, errors.Wrap(ErrBadResponse, err.Error())
	}

	codes := make(map[int]string, len(ds))
	for _, d := range ds {
		code := d.NameAcronym
		if code == "" {
			code = helper.GetDriverCodeName(d.FullName)
		}
		if code != "" {
			codes[d.DriverNumber] = code
		}
	}
	return codes, nil
}

func (c *Client) sessionLaps(ctx context.Context, sessionKey int) ([]lap, error) {
	q := url.Values{}
	q.Set("session_key", strconv.Itoa(sessionKey))
	body, err := c.get(ctx, "/v1/laps", q)
	if err != nil {
		return nil, err
	}
	laps, err := c.lapsCaster.From(body)
	if err != nil {
		return nil, errors.Wrap(ErrBadResponse, err.Error())
	}
	return laps, nil
}

// toLapSamples drops laps with a missing timing value or an unknown driver.
func toLapSamples(year int, laps []lap, codes map[int]string) []model.LapSample {
	samples := make([]model.LapSample, 0, len(laps))
	for _, l := range laps {
		code, found := codes[l.DriverNumber]
		if !found {
			continue
		}
		if l.LapDuration == nil || l.DurationSector1 == nil || l.DurationSector2 == nil || l.DurationSector3 == nil {
			continue
		}
		samples = append(samples, model.LapSample{
			Year:        year,
			Driver:      code,
			LapTime:     *l.LapDuration,
			SectorTime1: *l.DurationSector1,
			SectorTime2: *l.DurationSector2,
			SectorTime3: *l.DurationSector3,
		})
	}
	return samples
}

func (c *Client) get(ctx context.Context, path string, q url.Values) ([]byte, error) {
	u := fmt.Sprintf("%s%s?%s", c.apiDomain, path, q.Encode())

	if c.cache != nil {
		body, found, err := c.cache.Get(u)
		if err != nil {
			c.log.WithError(err).Warn("reading response cache")
		} else if found {
			c.log.WithField("url", u).Debug("cache hit")
			return body, nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, errors.Wrap(ErrBadResponse, err.Error())
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrap(ErrUnreachable, err.Error())
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(ErrUnreachable, err.Error())
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		// the API answers 404 to filters that match nothing
		return []byte(emptyList), nil
	case resp.StatusCode != http.StatusOK:
		return nil, errors.Wrapf(ErrBadResponse, "GET %s: %s", path, resp.Status)
	}

	// an empty list may only mean the session hasn't happened yet
	if c.cache != nil && !isEmptyList(body) {
		if err := c.cache.Put(u, body); err != nil {
			c.log.WithError(err).Warn("writing response cache")
		}
	}
	return body, nil
}

func isEmptyList(body []byte) bool {
	return string(bytes.TrimSpace(body)) == emptyList
}
