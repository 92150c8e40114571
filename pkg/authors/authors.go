// Package authors reports the last commit date of one author across every
// branch. Release managers use it to spot stale feature branches before
// cutting a change set.
package authors

import (
	"time"

	"github.com/cadence-sf/sfstage/pkg/errors"
	"github.com/cadence-sf/sfstage/pkg/git"
	"github.com/cadence-sf/sfstage/pkg/logging"
)

// NoActivity is reported for branches the author never committed to.
const NoActivity = "NA"

const dateLayout = "2006-01-02"

// Activity is one branch row of the report.
type Activity struct {
	Branch string
	Date   string
	// Latest marks the row(s) carrying the author's most recent date.
	Latest bool
}

// Report queries every branch for the author's last commit date, in the
// order git lists the branches. Branches without a matching commit get
// NoActivity and never count toward the latest marker.
func Report(client git.Client, author string) ([]Activity, error) {
	if author == "" {
		return nil, errors.New(errors.ErrInvalidInput, "author name must not be empty")
	}
	logger := logging.GetLogger("authors")

	branches, err := client.Branches()
	if err != nil {
		return nil, err
	}
	if len(branches) == 0 {
		return nil, errors.New(errors.ErrGit, "no branches found")
	}

	report := make([]Activity, 0, len(branches))
	var latest time.Time
	for _, branch := range branches {
		date, err := client.LastCommitDate(branch.Ref, author)
		if err != nil {
			// A ref that cannot be queried reads the same as no activity
			logger.Warn().Err(err).Str("ref", branch.Ref).Msg("Branch query failed")
			date = NoActivity
		}
		if date == "" {
			date = NoActivity
		}
		report = append(report, Activity{Branch: branch.Name, Date: date})

		if parsed, ok := parseDate(date); ok && parsed.After(latest) {
			latest = parsed
		}
	}

	if !latest.IsZero() {
		for i := range report {
			if parsed, ok := parseDate(report[i].Date); ok && parsed.Equal(latest) {
				report[i].Latest = true
			}
		}
	}
	return report, nil
}

func parseDate(s string) (time.Time, bool) {
	if s == "" || s == NoActivity {
		return time.Time{}, false
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
