package form

// TagCategory groups the tags offered by the services editor. Tags are stored
// flat; the category only drives how they are offered.
type TagCategory struct {
	Key  string   `json:"key"`
	Name string   `json:"name"`
	Tags []string `json:"tags"`
}

var tagCatalog = []TagCategory{
	{
		Key:  "level",
		Name: "Level",
		Tags: []string{
			"Primary 1", "Primary 2", "Primary 3", "Primary 4", "Primary 5", "Primary 6",
			"Secondary 1", "Secondary 2", "Secondary 3", "Secondary 4", "Secondary 5",
			"Junior College 1", "Junior College 2",
		},
	},
	{
		Key:  "subject",
		Name: "Subject",
		Tags: []string{
			"Math", "English", "Additional Math", "Science",
			"Physics", "Chemistry", "Biology", "General Paper",
		},
	},
	{
		Key:  "stream",
		Name: "Stream",
		Tags: []string{"G1", "G2", "G3", "Express", "NA", "NT"},
	},
	{
		Key:  "class_size",
		Name: "Class Size",
		Tags: []string{"Small Group", "Big Group", "1-to-1"},
	},
	{
		Key:  "delivery_mode",
		Name: "Delivery Mode",
		Tags: []string{"Onsite", "Online", "Hybrid"},
	},
}

// TagCatalog returns a copy of the tag vocabularies.
func TagCatalog() []TagCategory {
	out := make([]TagCategory, len(tagCatalog))
	for i, c := range tagCatalog {
		out[i] = TagCategory{Key: c.Key, Name: c.Name, Tags: append([]string(nil), c.Tags...)}
	}
	return out
}

// CategoryOf returns the catalog category of tag, or false for free-form tags.
func CategoryOf(tag string) (string, bool) {
	for _, c := range tagCatalog {
		for _, t := range c.Tags {
			if t == tag {
				return c.Key, true
			}
		}
	}
	return "", false
}
