package markup

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuccessEscapesArguments(t *testing.T) {
	got := Success("%s successfully %s.", `<b>"F1"</b>`, "added")
	assert.Equal(t, "<p class='green-text'>&#10004; &lt;b&gt;&#34;F1&#34;&lt;/b&gt; successfully added.", got)
}

func TestFailureEscapesErrors(t *testing.T) {
	got := Failure("DB Error: %s.", errors.New("near \"<\": syntax error"))
	assert.Equal(t, "<p class='red-text'>&#10006; DB Error: near &#34;&lt;&#34;: syntax error.", got)
}

func TestNonStringArgumentsUntouched(t *testing.T) {
	assert.Equal(t, "<p class='green-text'>&#10004; Successfully deleted ID 7: x", Success("Successfully deleted ID %d: %s", 7, "x"))
}
