package feed

// DefaultSources returns the built-in feed table, used when the config file
// does not define its own.
func DefaultSources() []Source {
	return []Source{
		// News / World
		{ID: "cbc-top", Name: "CBC Top Stories", Code: "CBC", Category: CategoryNews, Enabled: true,
			URLs: []string{"https://www.cbc.ca/webfeed/rss/rss-topstories"}},
		{ID: "cbc-canada", Name: "CBC Canada", Code: "CBC", Category: CategoryNews, Enabled: true,
			URLs: []string{"https://www.cbc.ca/webfeed/rss/rss-canada"}},
		{ID: "aljazeera", Name: "Al Jazeera", Code: "AJZ", Category: CategoryWorld, Enabled: true,
			URLs: []string{"https://www.aljazeera.com/xml/rss/all.xml"}},
		{ID: "guardian-world", Name: "The Guardian World", Code: "GDN", Category: CategoryWorld, Enabled: true,
			URLs: []string{"https://www.theguardian.com/world/rss"}},
		{ID: "bbc-world", Name: "BBC World", Code: "BBC", Category: CategoryWorld, Enabled: true,
			URLs: []string{"http://feeds.bbci.co.uk/news/world/rss.xml"}},

		// Finance / Economy / Trade
		{ID: "guardian-business", Name: "The Guardian Business", Code: "GDN", Category: CategoryFinance, Enabled: true,
			URLs: []string{"https://www.theguardian.com/business/rss"}},
		{ID: "boc-news", Name: "Bank of Canada News", Code: "BoC", Category: CategoryEconomy, Enabled: true,
			URLs: []string{"https://www.bankofcanada.ca/utility/news/feed/"}},
		{ID: "boc-press", Name: "BoC Press Releases", Code: "BoC", Category: CategoryEconomy, Enabled: true,
			URLs: []string{"https://www.bankofcanada.ca/content_type/press-releases/feed/"}},
		{ID: "boc-notices", Name: "BoC Market Notices", Code: "BoC", Category: CategoryFinance, Enabled: true,
			URLs: []string{"https://www.bankofcanada.ca/content_type/notices/feed/"}},
		{ID: "wto-news", Name: "WTO Latest News", Code: "WTO", Category: CategoryTrade, Enabled: true,
			URLs: []string{"https://www.wto.org/library/rss/latest_news_e.xml"}},

		// Science / Research / Tech
		{ID: "sciencedaily", Name: "ScienceDaily", Code: "SCI", Category: CategoryScience, Enabled: true,
			URLs: []string{"https://www.sciencedaily.com/rss/all.xml"}},
		{ID: "bbc-sci", Name: "BBC Sci/Env", Code: "BBC", Category: CategoryScience, Enabled: true,
			URLs: []string{"http://feeds.bbci.co.uk/news/science_and_environment/rss.xml"}},
		{ID: "nasa-breaking", Name: "NASA Breaking", Code: "NASA", Category: CategoryScience, Enabled: true,
			URLs: []string{"https://www.nasa.gov/rss/dyn/breaking_news.rss"}},
		{ID: "arxiv-ai", Name: "arXiv cs.AI", Code: "ARX", Category: CategoryResearch, Enabled: true,
			URLs: []string{"http://export.arxiv.org/rss/cs.AI"}},
		{ID: "arxiv-lg", Name: "arXiv cs.LG", Code: "ARX", Category: CategoryResearch, Enabled: true,
			URLs: []string{"http://export.arxiv.org/rss/cs.LG"}},
		{ID: "ars-technica", Name: "Ars Technica", Code: "ARS", Category: CategoryTech, Enabled: true,
			URLs: []string{"https://feeds.arstechnica.com/arstechnica/index"}},
		{ID: "the-register", Name: "The Register", Code: "REG", Category: CategoryTech, Enabled: true,
			URLs: []string{"https://www.theregister.com/headlines.atom"}},
		{ID: "hacker-news", Name: "Hacker News", Code: "HN", Category: CategoryTech, Enabled: true,
			URLs: []string{"https://hnrss.org/frontpage"}},

		// Weather
		{ID: "eccc-bc", Name: "Env Canada (BC Warnings)", Code: "ECCC", Category: CategoryWeather, Enabled: true,
			URLs: []string{"https://weather.gc.ca/rss/battleboard/bcrm1_e.xml"}},
	}
}
