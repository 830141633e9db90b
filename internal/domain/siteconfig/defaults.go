package siteconfig

// Default returns the seed document. Each call builds a fresh value, callers
// may mutate it freely.
func Default() SiteConfig {
	cfg := SiteConfig{
		Version: CurrentVersion,
		ShopInfo: ShopInfo{
			Name:            "CBD Shop",
			Description:     "Boutique CBD premium, livraison rapide et discrète",
			Logo:            "🌿",
			BackgroundImage: "",
			Theme: Theme{
				Primary:    "#22c55e",
				Secondary:  "#15803d",
				Text:       "#ffffff",
				Background: "#000000",
			},
		},
		ContactInfo: ContactInfo{
			OrderLink:       "https://t.me/cbdshop",
			OrderButtonText: "Commander",
			Email:           "contact@cbdshop.fr",
			Phone:           "",
		},
		SocialMediaLinks: []SocialLink{
			{ID: 1, Name: "Telegram", Emoji: "📱", URL: "https://t.me/cbdshop", Color: "#0088cc"},
			{ID: 2, Name: "Instagram", Emoji: "📸", URL: "https://instagram.com/cbdshop", Color: "#E4405F"},
			{ID: 3, Name: "WhatsApp", Emoji: "💬", URL: "https://wa.me/33600000000", Color: "#25D366"},
		},
		Categories: []Category{
			{ID: 1, Name: "Fleurs", Emoji: "🌸", Description: "Fleurs de CBD séchées"},
			{ID: 2, Name: "Résines", Emoji: "🍫", Description: "Résines et hash CBD"},
			{ID: 3, Name: "Pré-roulés", Emoji: "🚬", Description: "Pré-roulés prêts à l'emploi"},
			{ID: 4, Name: "Vapes", Emoji: "💨", Description: "E-liquides et puffs CBD"},
			{ID: 5, Name: "Infusions", Emoji: "🍵", Description: "Tisanes au chanvre"},
		},
		Farms: []Farm{
			{ID: 1, Name: "Swiss Farm", Emoji: "🇨🇭", Description: "Culture indoor suisse"},
			{ID: 2, Name: "Italian Farm", Emoji: "🇮🇹", Description: "Culture outdoor italienne"},
			{ID: 3, Name: "French Farm", Emoji: "🇫🇷", Description: "Culture greenhouse française"},
		},
		Products: []Product{
			{
				ID:          1,
				Name:        "Amnesia Haze",
				Description: "Fleur aux notes citronnées, taux de CBD 12%",
				Image:       "",
				Images:      []string{},
				Category:    "Fleurs",
				Farm:        "Swiss Farm",
				Variants: []Variant{
					{Name: "3g", Price: "15€", Size: "3g"},
					{Name: "10g", Price: "40€", Size: "10g"},
				},
				OrderLink: "https://t.me/cbdshop",
				Popular:   true,
			},
			{
				ID:          2,
				Name:        "Charas",
				Description: "Résine artisanale, texture souple",
				Image:       "",
				Images:      []string{},
				Category:    "Résines",
				Farm:        "Italian Farm",
				Variants: []Variant{
					{Name: "5g", Price: "30€", Size: "5g"},
				},
				OrderLink: "https://t.me/cbdshop",
				Popular:   false,
			},
		},
		Pages: []Page{
			{ID: 1, Name: "Accueil", Href: "/", IsDefault: true},
			{ID: 2, Name: "Informations", Href: "/info", IsDefault: true},
			{ID: 3, Name: "Contact", Href: "/contact", IsDefault: true},
		},
		AdminSettings: map[string]any{
			"title":         "Panel d'administration",
			"saveButton":    "Sauvegarder",
			"cancelButton":  "Annuler",
			"deleteConfirm": "Êtes-vous sûr de vouloir supprimer cet élément ?",
			"saveSuccess":   "Configuration sauvegardée",
			"saveError":     "Erreur lors de la sauvegarde",
		},
		PageContent: map[string]any{
			"home": map[string]any{
				"title":    "Bienvenue",
				"subtitle": "Découvrez notre sélection de produits CBD",
			},
			"info": map[string]any{
				"title":   "Informations",
				"content": "Tous nos produits contiennent moins de 0,3% de THC.",
			},
			"contact": map[string]any{
				"title":   "Contact",
				"content": "Une question ? Écrivez-nous.",
			},
		},
	}
	cfg.Normalize()
	return cfg
}
