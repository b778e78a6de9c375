package tzinfo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nicolasbauw/go-tzfile/tzif"
)

// phoenixZone reproduces the recorded history of America/Phoenix:
// eleven transitions, a local-mean-time rule, war-time DST and the 1968
// abolition of DST.
func phoenixZone() *Zone {
	return FromData("America/Phoenix", tzif.Data{
		Version: tzif.V2,
		V2Header: tzif.Header{
			Version: tzif.V2,
			Timecnt: 11,
			Typecnt: 5,
			Charcnt: 16,
		},
		V2Data: tzif.DataBlock{
			TransitionTimes: []int64{
				-2717643600, // LMT ends
				-1633273200, // 1918 DST begins
				-1615132800,
				-1601823600,
				-1583683200,
				-880210800, // war time
				-820519140,
				-812653140,
				-796845540,
				-84380400, // 1967 DST
				-68659200, // DST abolished
			},
			TransitionTypes: []uint8{4, 1, 2, 1, 2, 3, 2, 3, 2, 1, 2},
			LocalTimeTypes: []tzif.LocalTimeType{
				{Utoff: -26898, Dst: false, Idx: 0},  // LMT
				{Utoff: -21600, Dst: true, Idx: 4},   // MDT
				{Utoff: -25200, Dst: false, Idx: 8},  // MST
				{Utoff: -21600, Dst: true, Idx: 12},  // MWT
				{Utoff: -25200, Dst: false, Idx: 8},  // MST
			},
			Designations: []byte("LMT\x00MDT\x00MST\x00MWT\x00"),
		},
	})
}

// parisZone covers three years of Europe/Paris CET/CEST transitions.
func parisZone() *Zone {
	return FromData("Europe/Paris", tzif.Data{
		Version: tzif.V2,
		V2Header: tzif.Header{
			Version: tzif.V2,
			Timecnt: 6,
			Typecnt: 2,
			Charcnt: 9,
		},
		V2Data: tzif.DataBlock{
			TransitionTimes: []int64{
				1553994000, // 2019-03-31T01:00:00Z -> CEST
				1572138000, // 2019-10-27T01:00:00Z -> CET
				1585443600, // 2020-03-29T01:00:00Z -> CEST
				1603587600, // 2020-10-25T01:00:00Z -> CET
				1616893200, // 2021-03-28T01:00:00Z -> CEST
				1635642000, // 2021-10-31T01:00:00Z -> CET
			},
			TransitionTypes: []uint8{1, 0, 1, 0, 1, 0},
			LocalTimeTypes: []tzif.LocalTimeType{
				{Utoff: 3600, Dst: false, Idx: 0},
				{Utoff: 7200, Dst: true, Idx: 4},
			},
			Designations: []byte("CET\x00CEST\x00"),
		},
	})
}

// sydneyZone models a Southern Hemisphere zone whose DST window spans the
// year boundary.
func sydneyZone() *Zone {
	return FromData("Australia/Sydney", tzif.Data{
		Version: tzif.V2,
		V2Header: tzif.Header{
			Version: tzif.V2,
			Timecnt: 4,
			Typecnt: 2,
			Charcnt: 10,
		},
		V2Data: tzif.DataBlock{
			TransitionTimes: []int64{
				1570291200, // 2019-10-05T16:00:00Z -> AEDT
				1586016000, // 2020-04-04T16:00:00Z -> AEST
				1601740800, // 2020-10-03T16:00:00Z -> AEDT
				1617465600, // 2021-04-03T16:00:00Z -> AEST
			},
			TransitionTypes: []uint8{1, 0, 1, 0},
			LocalTimeTypes: []tzif.LocalTimeType{
				{Utoff: 36000, Dst: false, Idx: 0},
				{Utoff: 39600, Dst: true, Idx: 5},
			},
			Designations: []byte("AEST\x00AEDT\x00"),
		},
	})
}

// fixedZone has a type table but no transitions at all.
func fixedZone() *Zone {
	return FromData("Etc/GMT-4", tzif.Data{
		Version: tzif.V2,
		V2Header: tzif.Header{
			Version: tzif.V2,
			Typecnt: 1,
			Charcnt: 7,
		},
		V2Data: tzif.DataBlock{
			LocalTimeTypes: []tzif.LocalTimeType{{Utoff: 14400, Dst: false, Idx: 0}},
			Designations:   []byte("GMT-4\x00\x00"),
		},
	})
}

// emptyZone is a degenerate zone without any local time types.
func emptyZone() *Zone {
	return FromData("Empty", tzif.Data{Version: tzif.V1})
}

func utc(year int, month time.Month, day, hour, min, sec int) time.Time {
	return time.Date(year, month, day, hour, min, sec, 0, time.UTC)
}

func TestActiveRule_BoundaryInstant(t *testing.T) {
	require := require.New(t)
	z := phoenixZone()

	// An instant exactly at a transition resolves to the new rule.
	r, err := z.ActiveRule(-1633273200)
	require.NoError(err)
	require.Equal(Rule{Utoff: -21600, Dst: true, AbbrIndex: 4}, r)

	abbr, err := z.Abbreviation(r.AbbrIndex)
	require.NoError(err)
	require.Equal("MDT", abbr)

	// One second earlier the previous rule still applies.
	r, err = z.ActiveRule(-1633273201)
	require.NoError(err)
	require.Equal(Rule{Utoff: -25200, Dst: false, AbbrIndex: 8}, r)
}

func TestActiveRule_BeforeFirstTransition(t *testing.T) {
	require := require.New(t)
	z := phoenixZone()

	r, err := z.ActiveRule(-3000000000)
	require.NoError(err)
	require.Equal(Rule{Utoff: -26898, Dst: false, AbbrIndex: 0}, r)
}

func TestActiveRule_NoTransitions(t *testing.T) {
	require := require.New(t)
	z := fixedZone()

	r, err := z.ActiveRule(time.Now().Unix())
	require.NoError(err)
	require.Equal(Rule{Utoff: 14400, Dst: false, AbbrIndex: 0}, r)
}

func TestActiveRule_Idempotent(t *testing.T) {
	require := require.New(t)
	z := parisZone()

	first, err := z.ActiveRule(1590000000)
	require.NoError(err)
	second, err := z.ActiveRule(1590000000)
	require.NoError(err)
	require.Equal(first, second)
}

func TestActiveRule_NoData(t *testing.T) {
	_, err := emptyZone().ActiveRule(0)
	require.ErrorIs(t, err, ErrNoData)
}

func TestTransitionsInYear_Paris2020(t *testing.T) {
	require := require.New(t)

	tt, err := parisZone().TransitionsInYear(2020)
	require.NoError(err)
	require.Equal([]TransitionTime{
		{Time: utc(2020, time.March, 29, 1, 0, 0), Utoff: 7200, Dst: true, Abbreviation: "CEST"},
		{Time: utc(2020, time.October, 25, 1, 0, 0), Utoff: 3600, Dst: false, Abbreviation: "CET"},
	}, tt)
}

func TestTransitionsInYear_Empty(t *testing.T) {
	require := require.New(t)

	tt, err := parisZone().TransitionsInYear(1900)
	require.NoError(err)
	require.Empty(tt)

	// Phoenix abolished DST in 1968; later years have no transitions.
	tt, err = phoenixZone().TransitionsInYear(2020)
	require.NoError(err)
	require.Empty(tt)
}

func TestTransitionsInYear_EvenDSTFlips(t *testing.T) {
	require := require.New(t)

	// A stable zone flips in and out of DST within each calendar year,
	// so the count of DST-flipping entries is even.
	for year := 2019; year <= 2021; year++ {
		tt, err := parisZone().TransitionsInYear(year)
		require.NoError(err)
		require.Zero(len(tt) % 2)
	}
}

func TestTransitionsInYear_NoData(t *testing.T) {
	_, err := emptyZone().TransitionsInYear(2020)
	require.ErrorIs(t, err, ErrNoData)
}

func TestTransitions_All(t *testing.T) {
	require := require.New(t)

	tt, err := phoenixZone().Transitions()
	require.NoError(err)
	require.Len(tt, 11)
	require.Equal(utc(1883, time.November, 18, 19, 0, 0), tt[0].Time)
	require.Equal("MST", tt[0].Abbreviation)
	require.Equal("MDT", tt[1].Abbreviation)
	require.True(tt[1].Dst)
	for i := 1; i < len(tt); i++ {
		require.True(tt[i].Time.After(tt[i-1].Time))
	}
}

func TestAbbreviations(t *testing.T) {
	require := require.New(t)

	require.Equal([]string{"LMT", "MDT", "MST", "MWT"}, phoenixZone().Abbreviations())

	_, err := phoenixZone().Abbreviation(200)
	require.Error(err)
}

func TestInfoAt_ParisSummer(t *testing.T) {
	require := require.New(t)

	info, err := parisZone().InfoAt(utc(2020, time.September, 5, 16, 41, 44))
	require.NoError(err)

	require.Equal("Europe/Paris", info.Timezone)
	require.Equal(utc(2020, time.September, 5, 16, 41, 44), info.UTCDatetime)
	require.True(info.DSTPeriod)
	require.Equal(3600, info.RawOffset)
	require.NotNil(info.DSTOffset)
	require.Equal(7200, *info.DSTOffset)
	require.Equal(Offset(7200), info.UTCOffset)
	require.Equal("CEST", info.Abbreviation)
	require.Equal(36, info.WeekNumber)

	require.NotNil(info.DSTFrom)
	require.True(info.DSTFrom.Equal(utc(2020, time.March, 29, 1, 0, 0)))
	require.NotNil(info.DSTUntil)
	require.True(info.DSTUntil.Equal(utc(2020, time.October, 25, 1, 0, 0)))

	// Local time is UTC plus the active offset, without rounding.
	require.Equal("2020-09-05T18:41:44+02:00", info.Datetime.Format(time.RFC3339))
}

func TestInfoAt_ParisWinter(t *testing.T) {
	require := require.New(t)

	info, err := parisZone().InfoAt(utc(2020, time.January, 15, 12, 0, 0))
	require.NoError(err)

	require.False(info.DSTPeriod)
	require.Equal(3600, info.RawOffset)
	require.Equal(Offset(3600), info.UTCOffset)
	require.Equal("CET", info.Abbreviation)

	// No window has started in 2020 yet, so the prior year's window is
	// reported.
	require.NotNil(info.DSTFrom)
	require.True(info.DSTFrom.Equal(utc(2019, time.March, 31, 1, 0, 0)))
	require.NotNil(info.DSTUntil)
	require.True(info.DSTUntil.Equal(utc(2019, time.October, 27, 1, 0, 0)))
}

func TestInfoAt_SouthernHemisphereWindowSpansYears(t *testing.T) {
	require := require.New(t)

	info, err := sydneyZone().InfoAt(utc(2020, time.January, 15, 0, 0, 0))
	require.NoError(err)

	require.True(info.DSTPeriod)
	require.Equal("AEDT", info.Abbreviation)
	require.Equal(36000, info.RawOffset)
	require.NotNil(info.DSTOffset)
	require.Equal(39600, *info.DSTOffset)

	// The window started in the prior local year and ends in this one.
	require.NotNil(info.DSTFrom)
	require.True(info.DSTFrom.Equal(utc(2019, time.October, 5, 16, 0, 0)))
	require.NotNil(info.DSTUntil)
	require.True(info.DSTUntil.Equal(utc(2020, time.April, 4, 16, 0, 0)))
}

func TestInfoAt_NoDSTZone(t *testing.T) {
	require := require.New(t)

	// Phoenix in 2020: the zone has DST rules in its history but none
	// apply anymore.
	info, err := phoenixZone().InfoAt(utc(2020, time.June, 1, 0, 0, 0))
	require.NoError(err)
	require.False(info.DSTPeriod)
	require.Nil(info.DSTFrom)
	require.Nil(info.DSTUntil)
	require.Nil(info.DSTOffset)
	require.Equal(-25200, info.RawOffset)
	require.Equal("MST", info.Abbreviation)

	// A fixed-offset zone without transitions never fails either.
	info, err = fixedZone().InfoAt(utc(2020, time.June, 1, 0, 0, 0))
	require.NoError(err)
	require.False(info.DSTPeriod)
	require.Nil(info.DSTFrom)
	require.Equal(14400, info.RawOffset)
	require.Equal("GMT-4", info.Abbreviation)
}

func TestInfoAt_LocalYearSelection(t *testing.T) {
	require := require.New(t)

	// 2020-12-31T23:30:00Z is already 2021-01-01 in Paris. The window
	// scan must use the local year.
	info, err := parisZone().InfoAt(utc(2020, time.December, 31, 23, 30, 0))
	require.NoError(err)
	require.Equal(2021, info.Datetime.Year())
	require.NotNil(info.DSTFrom)
	require.True(info.DSTFrom.Equal(utc(2020, time.March, 29, 1, 0, 0)))
}

func TestInfoAt_NoData(t *testing.T) {
	_, err := emptyZone().InfoAt(time.Now())
	require.ErrorIs(t, err, ErrNoData)
}

func TestInfo_UsesCurrentTime(t *testing.T) {
	require := require.New(t)

	info, err := fixedZone().Info()
	require.NoError(err)
	require.WithinDuration(time.Now(), info.UTCDatetime, 5*time.Second)
}

func TestOffset_String(t *testing.T) {
	tests := []struct {
		off  Offset
		want string
	}{
		{7200, "+02:00"},
		{3600, "+01:00"},
		{0, "+00:00"},
		{-25200, "-07:00"},
		{-26898, "-07:28:18"},
		{37800, "+10:30"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, tt.off.String())
	}
}

func TestParse_RejectsMalformedBuffer(t *testing.T) {
	_, err := Parse("Bad/Zone", []byte("not a tzif file"))
	require.ErrorIs(t, err, tzif.ErrInvalidMagic)
}
