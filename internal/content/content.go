// Package content holds the static copy shown on the landing page.
package content

const (
	ProductName = "QuickLook"
	Tagline     = "macOS Quick Look for Windows"
	Headline    = "Preview files instantly"
	Lead        = "Press Space to preview any file without opening it. Just like macOS Quick Look, now on Windows."
	Summary     = "Bring macOS Quick Look feature to Windows. Press spacebar to preview any file instantly."

	FeaturesTitle = "Powerful Features"
	FeaturesLead  = "Everything you need to preview files efficiently on Windows. Built with performance and user experience in mind."
	PluginsPrompt = "Want to add support for more file types?"

	InstallTitle = "Easy Installation"
	InstallLead  = "Get started in minutes. QuickLook integrates seamlessly with Windows File Explorer."

	RepoURL    = "https://github.com/QL-Win/QuickLook"
	PluginsURL = "https://github.com/QL-Win/QuickLook/wiki/Available-Plugins"
	DocsURL    = "https://github.com/QL-Win/QuickLook/wiki"

	// MinDiskBytes backs the "~50 MB of disk space" requirement
	MinDiskBytes = 50 * 1024 * 1024
)

// Feature is one card in the features grid
type Feature struct {
	Icon        string
	Title       string
	Description string
}

// Step is one installation step
type Step struct {
	Icon        string
	Title       string
	Description string
}

// Link is a footer link
type Link struct {
	Name     string
	Href     string
	External bool
}

// LinkGroup is a titled column of footer links
type LinkGroup struct {
	Name  string
	Links []Link
}

var Features = []Feature{
	{
		Icon:        "👁",
		Title:       "Instant Preview",
		Description: "Press spacebar to preview any file instantly, just like macOS Quick Look. No waiting, no launching heavy applications.",
	},
	{
		Icon:        "🖼",
		Title:       "Images & Photos",
		Description: "Support for all common image formats including PNG, JPEG, GIF, WebP, TIFF, and RAW formats with EXIF data display.",
	},
	{
		Icon:        "🎞",
		Title:       "Video Playback",
		Description: "Preview videos with native controls. Supports MP4, MKV, AVI, and many other formats with hardware acceleration.",
	},
	{
		Icon:        "📄",
		Title:       "Documents",
		Description: "View PDFs, Markdown, plain text, HTML, and source code with syntax highlighting. Perfect for developers and writers.",
	},
	{
		Icon:        "🧩",
		Title:       "Plugin System",
		Description: "Extensible architecture with plugins for Office documents, EPUB books, archives, and more. Community-driven support.",
	},
	{
		Icon:        "🖥",
		Title:       "HiDPI Support",
		Description: "Crystal-clear rendering on high-resolution displays. Optimized for 4K monitors and modern Windows scaling.",
	},
	{
		Icon:        "⚡",
		Title:       "Lightning Fast",
		Description: "Optimized for performance with minimal resource usage. Preview files in milliseconds without slowing down your system.",
	},
	{
		Icon:        "🗂",
		Title:       "Archive Support",
		Description: "Browse ZIP, RAR, 7Z, and other archive formats without extracting. Navigate through folders with ease.",
	},
	{
		Icon:        "⌨",
		Title:       "Code Highlighting",
		Description: "Syntax highlighting for 100+ programming languages. Perfect for quickly reviewing code files.",
	},
}

var Steps = []Step{
	{
		Icon:        "⬇",
		Title:       "Download the Installer",
		Description: "Get the latest .msi installer from the download button above or from the GitHub releases page.",
	},
	{
		Icon:        "▶",
		Title:       "Run the Installer",
		Description: "Double-click the downloaded .msi file and follow the installation wizard. Administrator privileges may be required.",
	},
	{
		Icon:        "⚙",
		Title:       "Configure (Still in development)",
		Description: "Right-click the QuickLook icon in the system tray to customize keyboard shortcuts, appearance, and supported file types.",
	},
	{
		Icon:        "✓",
		Title:       "Start Previewing",
		Description: "Select any file in File Explorer and press the spacebar. QuickLook will instantly show a preview window.",
	},
}

var Requirements = []string{
	"Windows 10 version 1903 or later",
	"Windows 11 (all versions)",
	".NET Framework 4.8 or later",
	"~50 MB of disk space",
}

var FooterLinks = []LinkGroup{
	{
		Name: "Product",
		Links: []Link{
			{Name: "Features", Href: "#features"},
			{Name: "Installation", Href: "#install"},
			{Name: "Plugins", Href: PluginsURL, External: true},
		},
	},
	{
		Name: "Resources",
		Links: []Link{
			{Name: "Documentation", Href: DocsURL, External: true},
			{Name: "GitHub", Href: RepoURL, External: true},
			{Name: "Report Issue", Href: RepoURL + "/issues", External: true},
		},
	},
	{
		Name: "Community",
		Links: []Link{
			{Name: "Discussions", Href: RepoURL + "/discussions", External: true},
			{Name: "Contribute", Href: RepoURL + "/blob/master", External: true},
			{Name: "License", Href: "https://opensource.org/license/GPL-3.0", External: true},
		},
	},
}

// ExternalLinks flattens FooterLinks to the links that leave the page
func ExternalLinks() []Link {
	var out []Link
	for _, g := range FooterLinks {
		for _, l := range g.Links {
			if l.External {
				out = append(out, l)
			}
		}
	}
	return out
}
