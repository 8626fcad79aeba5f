package pets

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildFilter_DefaultsToAvailable(t *testing.T) {
	f := BuildFilter(url.Values{}, nil)

	require.NotNil(t, f.Available)
	assert.True(t, *f.Available)
	assert.Equal(t, "true", f.Applied()["available"])
}

func TestBuildFilter_AllDisablesConstraints(t *testing.T) {
	f := BuildFilter(url.Values{
		"available": {"all"},
		"type":      {"all"},
		"age":       {"all"},
	}, nil)

	assert.Nil(t, f.Available)
	assert.Empty(t, f.Type)
	assert.Empty(t, f.Age)
	assert.True(t, f.Matches(Pet{IsAvailable: false, Type: TypeBird}))
}

func TestBuildFilter_IgnoresUnknownKeysAndValues(t *testing.T) {
	f := BuildFilter(url.Values{
		"type":     {"Dragon"},
		"size":     {"LARGE"},
		"favorite": {"yes"},
		"page":     {"2"},
	}, nil)

	assert.Empty(t, f.Type)
	assert.Equal(t, SizeLarge, f.Size)
	assert.NotContains(t, f.Applied(), "favorite")
}

func TestFilter_AgeAndLocationAreCombined(t *testing.T) {
	f := BuildFilter(url.Values{"age": {"senior"}, "location": {"tx"}}, nil)

	assert.True(t, f.Matches(Pet{IsAvailable: true, Age: Age{Years: 9}, Location: Location{City: "Austin", State: "TX"}}))
	assert.False(t, f.Matches(Pet{IsAvailable: true, Age: Age{Years: 9}, Location: Location{City: "Denver", State: "CO"}}))
	assert.False(t, f.Matches(Pet{IsAvailable: true, Age: Age{Years: 7, Months: 11}, Location: Location{State: "TX"}}))
}

func TestAgeBracket_Contains(t *testing.T) {
	cases := []struct {
		bracket AgeBracket
		age     Age
		want    bool
	}{
		{AgeYoung, Age{Years: 0, Months: 3}, true},
		{AgeYoung, Age{Years: 2, Months: 6}, true},
		{AgeYoung, Age{Years: 2, Months: 7}, false},
		{AgeAdult, Age{Years: 2}, true},
		{AgeAdult, Age{Years: 7, Months: 11}, true},
		{AgeAdult, Age{Years: 8}, false},
		{AgeSenior, Age{Years: 7}, false},
		{AgeSenior, Age{Years: 8}, true},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.bracket.Contains(tc.age), "%s %+v", tc.bracket, tc.age)
	}
}

func TestFilter_SearchCoversNameBreedDescription(t *testing.T) {
	f := BuildFilter(url.Values{"search": {"retriever"}}, nil)

	assert.True(t, f.Matches(Pet{IsAvailable: true, Breed: "Golden Retriever"}))
	assert.True(t, f.Matches(Pet{IsAvailable: true, Description: "retriever mix"}))
	assert.False(t, f.Matches(Pet{IsAvailable: true, Name: "Rex", Breed: "Poodle"}))
}
