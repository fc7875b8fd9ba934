package validate

// Vocabulary holds the fixed word lists every predicate and extractor reads.
// It is a plain value; nothing mutates it after construction.
type Vocabulary struct {
	DomainKeyword    string   `yaml:"domain_keyword"`
	JobIndicators    []string `yaml:"job_indicators"`
	NavigationNoise  []string `yaml:"navigation_noise"`
	CompanyStopwords []string `yaml:"company_stopwords"`
	LocationKeywords []string `yaml:"location_keywords"`
	Technologies     []string `yaml:"technologies"`
}

func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		DomainKeyword: "rust",
		JobIndicators: []string{
			"rust", "developer", "engineer", "programmer", "backend", "back-end",
			"frontend", "front-end", "fullstack", "full-stack", "software",
			"devops", "remote", "hiring",
		},
		NavigationNoise: []string{
			"sign in", "sign up", "log in", "login", "logout", "post job",
			"post a job", "about us", "contact us", "privacy policy",
			"terms of service", "newsletter", "subscribe", "all rights reserved",
		},
		CompanyStopwords: []string{
			"developer", "engineer", "programmer", "remote", "senior", "junior",
			"backend", "frontend", "fullstack", "full-stack", "software",
			"salary", "apply",
		},
		LocationKeywords: []string{
			"remote", "hybrid", "onsite", "on-site", "worldwide", "anywhere",
			"global", "usa", "us", "united states", "uk", "united kingdom",
			"europe", "eu", "emea", "apac", "canada", "germany", "france",
			"netherlands", "spain", "switzerland", "sweden", "poland", "india",
			"japan", "australia", "london", "berlin", "paris", "amsterdam",
			"new york", "san francisco", "seattle", "austin", "toronto",
			"zurich", "munich", "dublin", "lisbon", "singapore", "tokyo",
		},
		Technologies: []string{
			"Rust", "Tokio", "Actix", "Axum", "WebAssembly", "WASM", "Golang",
			"Python", "JavaScript", "TypeScript", "C++", "C#", "Java", "Kotlin",
			"Swift", "Ruby", "Elixir", "Haskell", "Scala", "React", "Vue",
			"Angular", "Node.js", "Docker", "Kubernetes", "AWS", "GCP", "Azure",
			"Terraform", "Linux", "PostgreSQL", "MySQL", "MongoDB", "Redis",
			"Kafka", "GraphQL", "gRPC", "Solana", "Ethereum", "Blockchain",
			"Embedded",
		},
	}
}

// WithDefaults fills every empty field from DefaultVocabulary.
func (v Vocabulary) WithDefaults() Vocabulary {
	d := DefaultVocabulary()
	if v.DomainKeyword == "" {
		v.DomainKeyword = d.DomainKeyword
	}
	if len(v.JobIndicators) == 0 {
		v.JobIndicators = d.JobIndicators
	}
	if len(v.NavigationNoise) == 0 {
		v.NavigationNoise = d.NavigationNoise
	}
	if len(v.CompanyStopwords) == 0 {
		v.CompanyStopwords = d.CompanyStopwords
	}
	if len(v.LocationKeywords) == 0 {
		v.LocationKeywords = d.LocationKeywords
	}
	if len(v.Technologies) == 0 {
		v.Technologies = d.Technologies
	}
	return v
}
