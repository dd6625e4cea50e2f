package places

// defaultArticles maps place strings seen in family trees to the title of
// their encyclopedia article. Entries loaded from a gazetteer file are
// merged over these.
var defaultArticles = map[string]string{
	// Australia
	"Subiaco, Perth, Western Australia, Australia": "Subiaco,_Western_Australia",
	"Perth, Western Australia, Australia":          "Perth,_Western_Australia",
	"Perth, WA, Australia":                         "Perth,_Western_Australia",
	"Perth, Australia":                             "Perth,_Western_Australia",
	"Perth":                                        "Perth,_Western_Australia",
	"Sydney, NSW, Australia":                       "Sydney",
	"Sydney, New South Wales, Australia":           "Sydney",
	"Brisbane, Queensland, Australia":              "Brisbane",

	// Israel
	"Rehovot, Israel":                  "Rehovot",
	"Rehovot, Center District, Israel": "Rehovot",
	"Jerusalem":                        "Jerusalem",

	// Europe
	"Wien, Austria":           "Vienna",
	"Vienna, Vienna, Austria": "Vienna",

	"Nikolsburg (Mikulov), Moravia, Czechoslovakia":   "Mikulov",
	"Blackburn, Lancashire, England (United Kingdom)": "Blackburn,_Lancashire",

	"Pitten or Schwarzau am Steinfeld, near Neunkirchen, Lower Austria, Austria": "Neunkirchen,_Lower_Austria",

	// Eastern Europe and Asia
	"Savran, Podolia, Odessa oblast, Ukraine": "Savran,_Ukraine",
	"Bershad, Ukraine":                        "Bershad",
	"Hamedan, Iran, Islamic Republic of":      "Hamadan",
}
