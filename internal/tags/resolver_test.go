package tags

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisposition_SkipTagMatchesEnvironment(t *testing.T) {
	enabled, reason := Disposition([]string{"skip_safari"}, "safari")
	assert.False(t, enabled)
	assert.Contains(t, reason, "skip_safari")
}

func TestDisposition_SkipTagIgnoredInOtherEnvironment(t *testing.T) {
	enabled, _ := Disposition([]string{"skip_safari"}, "firefox")
	assert.True(t, enabled)
}

func TestDisposition_MatchIsCaseInsensitive(t *testing.T) {
	assert.False(t, Enabled([]string{"SKIP_Safari"}, "safari"))
	assert.False(t, Enabled([]string{"skip_safari"}, "Safari"))
}

func TestDisposition_EmptyEnvironmentEnablesEverything(t *testing.T) {
	assert.True(t, Enabled([]string{"skip_safari", "skip_firefox"}, ""))
}

func TestDisposition_BareSkipPrefixIsInert(t *testing.T) {
	assert.True(t, Enabled([]string{"skip_"}, ""))
	assert.True(t, Enabled([]string{"skip_"}, "safari"))
}

func TestDisposition_UnknownTagsAreInert(t *testing.T) {
	assert.True(t, Enabled([]string{"smoke", "shard_2"}, "safari"))
}

func TestDisposition_NoTagsMeansEnabled(t *testing.T) {
	assert.True(t, Enabled(nil, "safari"))
}

func TestDisposition_DisabledTagExcludesEverywhere(t *testing.T) {
	enabled, reason := Disposition([]string{"disabled"}, "firefox")
	assert.False(t, enabled)
	assert.Contains(t, reason, "disabled")

	assert.False(t, Enabled([]string{"disabled"}, ""))
}

func TestDisposition_AnyMatchingTagDisables(t *testing.T) {
	assert.False(t, Enabled([]string{"smoke", "skip_safari"}, "safari"))
}
