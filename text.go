package main

// Page copy.

type Job struct {
	Title      string
	Company    string
	Start      string
	End        string
	Logo       string
	Highlights []string
}

type Degree struct {
	Name        string
	Institution string
	Start       string
	End         string
	Logo        string
	Highlights  []string
}

type Project struct {
	Name    string
	Summary string
	Stack   []string
}

var (
	AboutMe = `I build software that is useful and a little bit fun, and I like knowing how things work
under the hood. Most of my projects start as a small idea and turn into an excuse to learn a new
language, tool or trick. Away from the keyboard I train Muay Thai and shoot pool.
Psst: click around the page. Something happens.`

	Projects = []Project{
		{
			Name:    "Terminal Mail",
			Summary: "A keyboard-driven email client for the terminal with fuzzy search over folders and threads.",
			Stack:   []string{"Go", "Bubble Tea", "go-imap"},
		},
		{
			Name:    "TUI Music",
			Summary: "Streams YouTube Music from the command line through a small TUI front end.",
			Stack:   []string{"Go", "yt-dlp", "mpv"},
		},
		{
			Name:    "Game Recommender",
			Summary: "Content-based game recommendations using TF-IDF and cosine similarity, with review filters.",
			Stack:   []string{"Python", "scikit-learn", "Plotly"},
		},
		{
			Name:    "Aurora Portfolio",
			Summary: "This site: a Go server with a starry sky, a hidden fireworks show and an admin dashboard.",
			Stack:   []string{"Go", "Gin", "SQLite", "Ebitengine"},
		},
	}

	Experience = []Job{
		{
			Title:   "Presentation Expert",
			Company: "Target",
			Start:   "Aug 2023",
			End:     "Present",
			Logo:    "images/TargetLogo.jpg",
			Highlights: []string{
				"Ran 300+ merchandising transitions on tight timelines",
				"Streamlined backroom inventory and floor-to-logistics handoffs",
				"Standardized daily pricing and signage checks across departments",
			},
		},
		{
			Title:   "Manager",
			Company: "Jasons Catered Events",
			Start:   "Aug 2016",
			End:     "Present",
			Logo:    "images/jasonsCateringLogo.png",
			Highlights: []string{
				"Coordinated custom menus around every guest's dietary needs",
				"Kept event AV and digital order tracking running",
				"Planned supply deliveries between venues to cut downtime",
			},
		},
	}

	Education = []Degree{
		{
			Name:        "Bachelor of Computer Science",
			Institution: "Western Governors University",
			Start:       "Sept 2019",
			End:         "May 2023",
			Logo:        "images/WGU-logo.png",
			Highlights: []string{
				"Magna Cum Laude, 3.8 GPA",
				"Data Structures, Algorithms, Web Development",
				"Capstone: machine learning recommendation system",
			},
		},
		{
			Name:        "Project+",
			Institution: "CompTIA",
			Start:       "July 2022",
			End:         "Present",
			Logo:        "images/comptiaCert.png",
			Highlights: []string{
				"Agile project management methodology",
			},
		},
	}
)
