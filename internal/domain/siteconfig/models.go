package siteconfig

// CurrentVersion is the schema version stamped on every document we write.
const CurrentVersion = 2

type SiteConfig struct {
	Version          int            `json:"version"`
	ShopInfo         ShopInfo       `json:"shopInfo"`
	ContactInfo      ContactInfo    `json:"contactInfo"`
	SocialMediaLinks []SocialLink   `json:"socialMediaLinks"`
	Categories       []Category     `json:"categories"`
	Farms            []Farm         `json:"farms"`
	Products         []Product      `json:"products"`
	Pages            []Page         `json:"pages"`
	AdminSettings    map[string]any `json:"adminSettings"`
	PageContent      map[string]any `json:"pageContent"`
}

type ShopInfo struct {
	Name            string `json:"name"`
	Description     string `json:"description"`
	Logo            string `json:"logo"` // emoji or URL
	BackgroundImage string `json:"backgroundImage"`
	Theme           Theme  `json:"theme"`
}

type Theme struct {
	Primary    string `json:"primary"`
	Secondary  string `json:"secondary"`
	Text       string `json:"text"`
	Background string `json:"background"`
}

type ContactInfo struct {
	OrderLink       string `json:"orderLink"`
	OrderButtonText string `json:"orderButtonText"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
}

type SocialLink struct {
	ID    int    `json:"id"`
	Name  string `json:"name" validate:"required"`
	Emoji string `json:"emoji" validate:"required"`
	URL   string `json:"url" validate:"required,url"`
	Color string `json:"color"`
}

type Category struct {
	ID          int    `json:"id"`
	Name        string `json:"name" validate:"required"`
	Emoji       string `json:"emoji" validate:"required"`
	Description string `json:"description"`
}

// Farm is a supplier/origin tag. Same shape as Category, tracked separately.
type Farm struct {
	ID          int    `json:"id"`
	Name        string `json:"name" validate:"required"`
	Emoji       string `json:"emoji" validate:"required"`
	Description string `json:"description"`
}

type Product struct {
	ID          int       `json:"id"`
	Name        string    `json:"name" validate:"required"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	Images      []string  `json:"images"`
	Video       string    `json:"video"`
	Category    string    `json:"category" validate:"required"` // category name, not id
	Farm        string    `json:"farm,omitempty"`
	Variants    []Variant `json:"variants" validate:"dive"`
	OrderLink   string    `json:"orderLink"`
	Popular     bool      `json:"popular"`
}

type Variant struct {
	Name  string `json:"name" validate:"required"`
	Price string `json:"price"`
	Size  string `json:"size"`
}

type Page struct {
	ID        int    `json:"id"`
	Name      string `json:"name" validate:"required"`
	Href      string `json:"href" validate:"required"`
	IsDefault bool   `json:"isDefault"`
}

func (s SocialLink) Identifier() int { return s.ID }
func (c Category) Identifier() int   { return c.ID }
func (f Farm) Identifier() int       { return f.ID }
func (p Product) Identifier() int    { return p.ID }
func (p Page) Identifier() int       { return p.ID }

// Normalize replaces nil lists and maps with empty ones so the document
// never serializes a null collection.
func (c *SiteConfig) Normalize() {
	if c.SocialMediaLinks == nil {
		c.SocialMediaLinks = []SocialLink{}
	}
	if c.Categories == nil {
		c.Categories = []Category{}
	}
	if c.Farms == nil {
		c.Farms = []Farm{}
	}
	if c.Products == nil {
		c.Products = []Product{}
	}
	for i := range c.Products {
		if c.Products[i].Images == nil {
			c.Products[i].Images = []string{}
		}
		if c.Products[i].Variants == nil {
			c.Products[i].Variants = []Variant{}
		}
	}
	if c.Pages == nil {
		c.Pages = []Page{}
	}
	if c.AdminSettings == nil {
		c.AdminSettings = map[string]any{}
	}
	if c.PageContent == nil {
		c.PageContent = map[string]any{}
	}
}

// CategoryByName returns the category with exactly the given name. Products
// reference categories by exact name.
func (c SiteConfig) CategoryByName(name string) (Category, bool) {
	for _, cat := range c.Categories {
		if cat.Name == name {
			return cat, true
		}
	}
	return Category{}, false
}

// FarmByName returns the farm with the given name.
func (c SiteConfig) FarmByName(name string) (Farm, bool) {
	for _, f := range c.Farms {
		if f.Name == name {
			return f, true
		}
	}
	return Farm{}, false
}
