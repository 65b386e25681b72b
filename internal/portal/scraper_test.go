package portal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const timecardHTML = `
<html><body>
<table class="nav"><tr><td>Home</td></tr></table>
<table class="timecard">
  <thead>
    <tr>
      <th>Date</th><th>In Punch</th><th>Out Punch</th>
      <th>Pay Code</th><th>Amount</th><th>Shift</th><th>Daily</th>
    </tr>
  </thead>
  <tbody>
    <tr>
      <td>Fri 02/20</td><td>8:58</td><td>17:02</td>
      <td>REG</td><td>8.00</td><td>8:04</td><td>8:04</td>
    </tr>
    <tr>
      <td>Sat 02/21</td><td>late arrival; 9:07</td><td>14:00</td>
      <td></td><td></td><td></td><td></td>
    </tr>
  </tbody>
</table>
</body></html>`

func TestParseTimecardTable(t *testing.T) {
	rows, err := ParseTimecardTable(timecardHTML)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Fri 02/20", rows[0]["Date"])
	assert.Equal(t, "8:58", rows[0]["In Punch"])
	assert.Equal(t, "REG", rows[0]["Pay Code"])
	assert.Equal(t, "late arrival; 9:07", rows[1]["In Punch"],
		"the raw cell keeps its note prefix; the normalizer strips it")
}

func TestParseTimecardTableNoTable(t *testing.T) {
	rows, err := ParseTimecardTable("<html><body><p>no punches here</p></body></html>")
	require.NoError(t, err)
	assert.Empty(t, rows)
}
