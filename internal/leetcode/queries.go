package leetcode

import (
	"encoding/json"
	"strconv"
)

// GraphQL documents for the remote service. Query strings and variable shapes
// are an external contract dictated by the service; they are not redesigned
// here.

const recentAcSubmissionsQuery = `
query recentAcSubmissionList($username: String!, $limit: Int!) {
  recentAcSubmissionList(username: $username, limit: $limit) {
    id
    title
    titleSlug
    timestamp
  }
}`

const submissionListQuery = `
query submissionList($offset: Int!, $limit: Int!, $lastKey: String) {
  submissionList(offset: $offset, limit: $limit, lastKey: $lastKey) {
    lastKey
    hasNext
    submissions {
      id
      title
      titleSlug
      statusDisplay
      lang
      timestamp
    }
  }
}`

const questionDetailQuery = `
query questionDetail($titleSlug: String!) {
  question(titleSlug: $titleSlug) {
    questionFrontendId
    title
    titleSlug
    content
    difficulty
    topicTags {
      name
      slug
    }
  }
}`

const submissionDetailsQuery = `
query submissionDetails($submissionId: Int!) {
  submissionDetails(submissionId: $submissionId) {
    runtimeDisplay
    runtimePercentile
    memoryDisplay
    memoryPercentile
    code
    lang {
      name
    }
  }
}`

const userStatusQuery = `
query userStatus {
  userStatus {
    isSignedIn
    username
  }
}`

// graphqlRequest is the POST body for every remote call.
type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphqlError struct {
	Message string `json:"message"`
}

// graphqlResponse is the envelope every remote response arrives in. Data is
// kept raw so each operation can decode its own payload shape.
type graphqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphqlError  `json:"errors"`
}

// submissionSummary is one row of a submission listing. The remote returns
// numeric fields as strings.
type submissionSummary struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	TitleSlug     string `json:"titleSlug"`
	StatusDisplay string `json:"statusDisplay"`
	Lang          string `json:"lang"`
	Timestamp     string `json:"timestamp"`
}

// epochSeconds parses the string timestamp; 0 when absent or malformed.
func (s submissionSummary) epochSeconds() int64 {
	ts, err := strconv.ParseInt(s.Timestamp, 10, 64)
	if err != nil {
		return 0
	}
	return ts
}

// submissionID parses the string submission id; 0 when absent or malformed.
func (s submissionSummary) submissionID() int {
	id, err := strconv.Atoi(s.ID)
	if err != nil {
		return 0
	}
	return id
}

type recentAcSubmissionsData struct {
	RecentAcSubmissionList []submissionSummary `json:"recentAcSubmissionList"`
}

type submissionListData struct {
	SubmissionList struct {
		LastKey     string              `json:"lastKey"`
		HasNext     bool                `json:"hasNext"`
		Submissions []submissionSummary `json:"submissions"`
	} `json:"submissionList"`
}

type topicTag struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type questionData struct {
	Question *struct {
		QuestionFrontendID string     `json:"questionFrontendId"`
		Title              string     `json:"title"`
		TitleSlug          string     `json:"titleSlug"`
		Content            string     `json:"content"`
		Difficulty         string     `json:"difficulty"`
		TopicTags          []topicTag `json:"topicTags"`
	} `json:"question"`
}

type submissionDetailsData struct {
	SubmissionDetails *struct {
		RuntimeDisplay    string  `json:"runtimeDisplay"`
		RuntimePercentile float64 `json:"runtimePercentile"`
		MemoryDisplay     string  `json:"memoryDisplay"`
		MemoryPercentile  float64 `json:"memoryPercentile"`
		Code              string  `json:"code"`
		Lang              struct {
			Name string `json:"name"`
		} `json:"lang"`
	} `json:"submissionDetails"`
}

type userStatusData struct {
	UserStatus struct {
		IsSignedIn bool   `json:"isSignedIn"`
		Username   string `json:"username"`
	} `json:"userStatus"`
}
