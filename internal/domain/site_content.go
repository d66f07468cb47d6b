package domain

// SiteContentKey — фиксированный ключ единственной записи контента сайта.
const SiteContentKey = "site_configuration"

// SiteContent — редакционный контент главной страницы и страницы "О бренде".
type SiteContent struct {
	Home  HomeContent
	About AboutContent
}

type HomeContent struct {
	Headline    string
	Subheadline string
	HeroImageID string
}

type AboutContent struct {
	Heading       string
	Paragraphs    []string
	StudioImageID string
}

// DefaultSiteContent возвращается, когда записи в хранилище нет или чтение не удалось.
func DefaultSiteContent() SiteContent {
	return SiteContent{
		Home: HomeContent{
			Headline:    "RAW IDEAS.\nDEFINED FORM.",
			Subheadline: "RAWLINE explores the architectural stage of creation. The first line drawn before refinement becomes the structure of the garment.",
			HeroImageID: "editorial_main",
		},
		About: AboutContent{
			Heading: "The first line before refinement.",
			Paragraphs: []string{
				"RAWLINE explores the raw stage of creation, the intuitive sketch made physical. We believe that the most powerful form of expression exists at the inception of an idea, before it is softened by the pressure of perfection.",
				"Each piece in our collection is an architectural exercise. We focus on weight, silhouette, and the way a fabric holds a line. Our production is intentional, small-scale, and permanent. We do not restock; we evolve.",
				"Designed from instinct. Built for the individual.",
			},
			StudioImageID: "about_studio",
		},
	}
}
