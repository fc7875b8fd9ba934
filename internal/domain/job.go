package domain

// RemoteFlag renders the remote attribute as Yes/No.
type RemoteFlag string

const (
	RemoteYes RemoteFlag = "Yes"
	RemoteNo  RemoteFlag = "No"
)

// MinTitleLen is the shortest title a record may carry.
const MinTitleLen = 5

// JobRecord is one extracted posting. Zero values mean "not found".
type JobRecord struct {
	Title           string     `json:"title"`
	Company         string     `json:"company"`
	Location        string     `json:"location"`
	Salary          string     `json:"salary"`
	JobType         string     `json:"job_type"`
	ExperienceLevel string     `json:"experience_level"`
	Remote          RemoteFlag `json:"remote"`
	Technologies    []string   `json:"technologies"`
	Description     string     `json:"description"`
	URL             string     `json:"url"`
	DatePosted      string     `json:"date_posted"`
}

// Valid reports whether the record has a usable title.
func (j JobRecord) Valid() bool {
	return len([]rune(j.Title)) >= MinTitleLen
}
