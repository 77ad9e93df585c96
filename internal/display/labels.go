package display

// Labels holds the user-facing strings of the presenters.
type Labels struct {
	UnknownType   string
	NoRace        string
	NoArchetype   string
	Stats         string
	ATK           string
	DEF           string
	Level         string
	LinkVal       string
	NoStats       string
	NoDescription string
	Sets          string
	NoSets        string
	Price         string
	Image         string
	Total         string
	Filtered      string
	Page          string
	NoResults     string
	LoadFailed    string
	Races         string
	Archetypes    string
	Types         string
	All           string
}

var english = Labels{
	UnknownType:   "Unknown type",
	NoRace:        "No race",
	NoArchetype:   "No archetype",
	Stats:         "Stats",
	ATK:           "ATK",
	DEF:           "DEF",
	Level:         "Level",
	LinkVal:       "Link",
	NoStats:       "No stats",
	NoDescription: "No description",
	Sets:          "Sets",
	NoSets:        "No set information",
	Price:         "Price",
	Image:         "Image",
	Total:         "Total",
	Filtered:      "Showing",
	Page:          "Page",
	NoResults:     "No cards match the current filters.",
	LoadFailed:    "Failed to load card data, please refresh and try again.",
	Races:         "Races",
	Archetypes:    "Archetypes",
	Types:         "Types",
	All:           "All",
}

var chinese = Labels{
	UnknownType:   "未知类型",
	NoRace:        "无种族",
	NoArchetype:   "无系列",
	Stats:         "卡片属性",
	ATK:           "攻击力",
	DEF:           "防御力",
	Level:         "等级",
	LinkVal:       "连接值",
	NoStats:       "无属性数据",
	NoDescription: "无描述",
	Sets:          "卡片系列",
	NoSets:        "无系列信息",
	Price:         "价格",
	Image:         "图片",
	Total:         "总数",
	Filtered:      "显示",
	Page:          "页",
	NoResults:     "没有找到匹配的卡片",
	LoadFailed:    "加载失败，请刷新页面重试",
	Races:         "种族",
	Archetypes:    "系列",
	Types:         "类型",
	All:           "全部",
}

// LabelsFor returns the labels of a supported language ("zh" or "en").
// Anything else gets English.
func LabelsFor(lang string) Labels {
	if lang == "zh" {
		return chinese
	}
	return english
}
