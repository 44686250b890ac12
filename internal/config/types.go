package config

// Config holds the resolved user options for a card render. It is loaded
// once at invocation time and never mutated afterwards.
type Config struct {
	// Override paths for bundled assets. Empty means use the bundled default.
	BackgroundImage string `yaml:"background_image"`
	FontAnurati     string `yaml:"font_anurati"`
	FontChiMing     string `yaml:"font_chi_ming"`
	FontZcool       string `yaml:"font_zcool"`

	// AssetDir overrides the base directory the bundled-asset search starts
	// from. Empty means the directory of the running executable.
	AssetDir string `yaml:"asset_dir"`

	// WeekendQuotes is the phrase pool a weekend mood line is drawn from.
	WeekendQuotes []string `yaml:"weekend_quotes"`

	// HitokotoTypes are the category codes sent to the quote service.
	HitokotoTypes []string `yaml:"hitokoto_types"`

	// RenderMode is the default backend: "dom" or "vector".
	RenderMode string `yaml:"render_mode"`

	// Footer is the attribution line at the bottom of the card.
	Footer string `yaml:"footer"`
}

// DefaultWeekendQuotes is the stock weekend phrase pool.
var DefaultWeekendQuotes = []string{
	"睡到自然醒喵", "公园散散步喵", "煮杯咖啡发呆", "陪陪家人放松", "享受一顿大餐",
	"听首轻松的歌", "晒晒温暖太阳", "读本有趣的书", "做个美梦也好", "约朋友聚一聚",
	"要玩场游戏吗", "来饮茶看书喵", "整理一下心情", "享受独处时光", "陪猫玩玩闹闹",
	"玩会游戏放松", "陪我聊聊天喵",
}

// Default returns a Config populated with the stock settings.
func Default() *Config {
	return &Config{
		WeekendQuotes: append([]string(nil), DefaultWeekendQuotes...),
		HitokotoTypes: []string{"a"},
		RenderMode:    "dom",
		Footer:        "Powered By 狼狼",
	}
}
