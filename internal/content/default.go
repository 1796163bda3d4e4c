package content

var bundled = Model{
	Testimonials: []Testimonial{
		{
			ID:     1,
			Name:   "Arjun Sharma",
			Role:   "Engineering Student, IIT Delhi",
			City:   "Delhi",
			Quote:  "Finally, energy without the sugar crash! Perfect for those late-night study sessions.",
			Rating: 5,
		},
		{
			ID:     2,
			Name:   "Priya Patel",
			Role:   "Medical Student",
			City:   "Mumbai",
			Quote:  "As a med student, I need clean energy. Rise Gum is a game-changer!",
			Rating: 5,
		},
		{
			ID:     3,
			Name:   "Rohan Gupta",
			Role:   "Software Developer",
			City:   "Bangalore",
			Quote:  "Convenient and effective. No more coffee stains on my laptop!",
			Rating: 5,
		},
	},
	ProblemPoints: []Point{
		{ID: 1, Title: "Sugary Energy Drinks", Description: "High sugar, crashes, unhealthy", Icon: "X", Type: "problem"},
		{ID: 2, Title: "Regular Gum", Description: "No energy boost, just flavor", Icon: "Minus", Type: "neutral"},
		{ID: 3, Title: "Rise Gum", Description: "Clean energy, sugar-free, convenient", Icon: "CheckCircle", Type: "solution"},
	},
	ProductBenefits: []Point{
		{ID: 1, Title: "Sugar-Free & Healthy", Description: "Zero sugar, zero calories. All the energy, none of the crash.", Icon: "Heart"},
		{ID: 2, Title: "Pocket-Sized Convenience", Description: "Fits anywhere. Perfect for exams, meetings, or long commutes.", Icon: "Zap"},
		{ID: 3, Title: "Fast-Acting Energy", Description: "Energy in seconds, not minutes. Powered by natural caffeine.", Icon: "Clock"},
	},
	SocialProofStats: Stats{
		InterestedStudents: 1247,
		Universities:       15,
		Cities:             8,
		GrowthRate:         "+12% weekly",
	},
	SocialLinks: []SocialLink{
		{Platform: "Instagram", Icon: "Instagram", URL: "#"},
		{Platform: "Twitter", Icon: "Twitter", URL: "#"},
		{Platform: "LinkedIn", Icon: "Linkedin", URL: "#"},
		{Platform: "WhatsApp", Icon: "MessageCircle", URL: "#"},
	},
	ContactInfo: ContactInfo{
		Email:   "hello@risegum.in",
		Phone:   "+91-9999-RISE-GUM",
		Address: "Coming to campuses near you",
	},
}

// Default returns a copy of the content bundled with the binary. The page
// renders it whenever remote content is unavailable.
func Default() Model {
	return bundled.Clone()
}
