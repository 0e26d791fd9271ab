package ideas

// Domains lists every domain a client may select when browsing curated ideas.
// Only some of them carry curated entries.
var Domains = []string{
	"AI", "Web", "App", "IoT", "Cloud", "Data Science", "Blockchain", "Game Dev",
	"Biotechnology", "Environmental Science", "Neuroscience", "Robotics",
}

var catalog = map[string][]Idea{
	"AI": {
		{
			Title:       "Emotion Recognition in Virtual Reality",
			Description: "Develop AI models to detect and respond to user emotions in VR environments for enhanced immersive experiences.",
			Difficulty:  "Advanced",
			Skills:      []string{"Machine Learning", "Computer Vision", "VR Development", "Python"},
			Duration:    "8-10 months",
		},
		{
			Title:       "AI-Powered Code Review Assistant",
			Description: "Create an intelligent system that automatically reviews code for bugs, security issues, and optimization opportunities.",
			Difficulty:  "Intermediate",
			Skills:      []string{"NLP", "Static Analysis", "Python", "Machine Learning"},
			Duration:    "6-8 months",
		},
		{
			Title:       "Personalized Learning Path Generator",
			Description: "Build an AI system that creates customized learning curricula based on individual learning styles and goals.",
			Difficulty:  "Intermediate",
			Skills:      []string{"Machine Learning", "Educational Technology", "Data Analysis"},
			Duration:    "5-7 months",
		},
	},
	"Data Science": {
		{
			Title:       "Urban Traffic Pattern Analysis",
			Description: "Analyze city traffic data to predict congestion patterns and optimize traffic light timing for reduced emissions.",
			Difficulty:  "Intermediate",
			Skills:      []string{"Data Analysis", "Python", "GIS", "Statistics"},
			Duration:    "4-6 months",
		},
		{
			Title:       "Social Media Sentiment Impact on Stock Prices",
			Description: "Investigate the correlation between social media sentiment and stock market movements using big data analytics.",
			Difficulty:  "Advanced",
			Skills:      []string{"NLP", "Financial Analysis", "Big Data", "Python", "Statistics"},
			Duration:    "6-9 months",
		},
	},
	"Biotechnology": {
		{
			Title:       "Protein Folding Prediction Using Deep Learning",
			Description: "Develop neural networks to predict protein structures for drug discovery and disease research.",
			Difficulty:  "Advanced",
			Skills:      []string{"Bioinformatics", "Deep Learning", "Molecular Biology", "Python"},
			Duration:    "10-12 months",
		},
		{
			Title:       "Microbiome Analysis for Personalized Nutrition",
			Description: "Study gut microbiome data to provide personalized dietary recommendations for optimal health.",
			Difficulty:  "Intermediate",
			Skills:      []string{"Bioinformatics", "Statistics", "Nutrition Science", "R"},
			Duration:    "6-8 months",
		},
	},
	"Environmental Science": {
		{
			Title:       "Plastic Waste Detection in Oceans Using Satellite Imagery",
			Description: "Use computer vision and satellite data to track and quantify ocean plastic pollution globally.",
			Difficulty:  "Advanced",
			Skills:      []string{"Remote Sensing", "Computer Vision", "Environmental Science", "Python"},
			Duration:    "8-10 months",
		},
		{
			Title:       "Carbon Footprint Tracker for Smart Cities",
			Description: "Develop IoT-based systems to monitor and reduce carbon emissions in urban environments.",
			Difficulty:  "Intermediate",
			Skills:      []string{"IoT", "Environmental Monitoring", "Data Analysis", "Sustainability"},
			Duration:    "6-8 months",
		},
	},
	"Blockchain": {
		{
			Title:       "Decentralized Academic Credential Verification",
			Description: "Create a blockchain system for secure, tamper-proof academic credential verification.",
			Difficulty:  "Intermediate",
			Skills:      []string{"Blockchain", "Smart Contracts", "Cryptography", "Web Development"},
			Duration:    "5-7 months",
		},
	},
	"Robotics": {
		{
			Title:       "Autonomous Disaster Response Robots",
			Description: "Design robots that can navigate disaster zones autonomously to assist in search and rescue operations.",
			Difficulty:  "Advanced",
			Skills:      []string{"Robotics", "Computer Vision", "Path Planning", "Embedded Systems"},
			Duration:    "12-15 months",
		},
	},
}

// catalogOrder keeps iteration over the catalog deterministic.
var catalogOrder = []string{"AI", "Data Science", "Biotechnology", "Environmental Science", "Blockchain", "Robotics"}
