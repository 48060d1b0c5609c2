package icons

import (
	"net/url"
	"regexp"
	"strings"
)

type domainIcon struct {
	domain string
	icon   string
}

// domainIcons is scanned in order by the loose match in ForURL, so order
// decides ties. Values are simple-icons names or full iconify specifiers.
var domainIcons = []domainIcon{
	// Code & Development
	{"github.com", "iconify:simple-icons:github"},
	{"gitlab.com", "gitlab"},
	{"bitbucket.org", "bitbucket"},
	{"stackoverflow.com", "stackoverflow"},
	{"dev.to", "devdotto"},
	{"codepen.io", "codepen"},
	{"replit.com", "replit"},
	{"codesandbox.io", "codesandbox"},
	{"npm.js.com", "npm"},
	{"npmjs.com", "npm"},
	{"pypi.org", "pypi"},

	// Cloud & Infrastructure
	{"aws.amazon.com", "amazonaws"},
	{"cloud.google.com", "googlecloud"},
	{"azure.microsoft.com", "microsoftazure"},
	{"vercel.com", "vercel"},
	{"netlify.com", "netlify"},
	{"heroku.com", "heroku"},
	{"digitalocean.com", "digitalocean"},
	{"cloudflare.com", "cloudflare"},
	{"railway.app", "railway"},
	{"render.com", "render"},

	// Communication
	{"slack.com", "slack"},
	{"discord.com", "discord"},
	{"teams.microsoft.com", "microsoftteams"},
	{"zoom.us", "zoom"},
	{"meet.google.com", "googlemeet"},
	{"telegram.org", "telegram"},
	{"whatsapp.com", "whatsapp"},

	// Productivity & Project Management
	{"notion.so", "notion"},
	{"confluence.atlassian.net", "confluence"},
	{"atlassian.net", "atlassian"},
	{"trello.com", "trello"},
	{"asana.com", "asana"},
	{"linear.app", "linear"},
	{"monday.com", "mondaydotcom"},
	{"jira.atlassian.net", "jira"},
	{"clickup.com", "clickup"},
	{"airtable.com", "airtable"},
	{"coda.io", "coda"},

	// Email
	{"mail.google.com", "gmail"},
	{"gmail.com", "gmail"},
	{"slides.google.com", "iconify:simple-icons:googleslides"},
	{"docs.google.com", "iconify:simple-icons:googledocs"},
	{"sheets.google.com", "iconify:simple-icons:googlesheets"},
	{"outlook.com", "microsoftoutlook"},
	{"protonmail.com", "protonmail"},
	{"fastmail.com", "fastmail"},

	// Social Media
	{"twitter.com", "x"},
	{"x.com", "x"},
	{"linkedin.com", "linkedin"},
	{"reddit.com", "reddit"},
	{"facebook.com", "facebook"},
	{"instagram.com", "instagram"},
	{"tiktok.com", "tiktok"},
	{"pinterest.com", "pinterest"},
	{"threads.net", "threads"},
	{"mastodon.social", "mastodon"},
	{"bsky.app", "bluesky"},

	// Media & Entertainment
	{"youtube.com", "youtube"},
	{"vimeo.com", "vimeo"},
	{"spotify.com", "spotify"},
	{"soundcloud.com", "soundcloud"},
	{"netflix.com", "netflix"},
	{"twitch.tv", "twitch"},
	{"apple.com/music", "applemusic"},
	{"podcasts.apple.com", "applepodcasts"},

	// Design
	{"figma.com", "figma"},
	{"dribbble.com", "dribbble"},
	{"behance.net", "behance"},
	{"canva.com", "canva"},
	{"sketch.com", "sketch"},
	{"adobe.com", "adobe"},
	{"framer.com", "framer"},
	{"invisionapp.com", "invision"},

	// Analytics & Monitoring
	{"analytics.google.com", "googleanalytics"},
	{"mixpanel.com", "mixpanel"},
	{"amplitude.com", "amplitude"},
	{"sentry.io", "sentry"},
	{"datadog.com", "datadog"},
	{"newrelic.com", "newrelic"},
	{"grafana.com", "grafana"},
	{"hotjar.com", "hotjar"},

	// Documentation & Knowledge
	{"readthedocs.io", "readthedocs"},
	{"gitbook.com", "gitbook"},
	{"readme.io", "readme"},
	{"docusaurus.io", "docusaurus"},

	// E-commerce & Finance
	{"shopify.com", "shopify"},
	{"stripe.com", "stripe"},
	{"paypal.com", "paypal"},
	{"amazon.com", "amazon"},
	{"ebay.com", "ebay"},
	{"etsy.com", "etsy"},
	{"square.com", "square"},

	// Storage & Files
	{"drive.google.com", "googledrive"},
	{"dropbox.com", "dropbox"},
	{"box.com", "box"},
	{"onedrive.live.com", "onedrive"},
	{"icloud.com", "icloud"},

	// News & Reading
	{"medium.com", "medium"},
	{"substack.com", "substack"},
	{"news.ycombinator.com", "ycombinator"},
	{"hackernews.com", "ycombinator"},
	{"rss.com", "rss"},

	// AI & ML
	{"chat.openai.com", "openai"},
	{"openai.com", "openai"},
	{"anthropic.com", "anthropic"},
	{"huggingface.co", "huggingface"},
	{"kaggle.com", "kaggle"},
	{"colab.research.google.com", "googlecolab"},

	// CI/CD & DevOps
	{"circleci.com", "circleci"},
	{"travis-ci.org", "travisci"},
	{"jenkins.io", "jenkins"},
	{"docker.com", "docker"},
	{"hub.docker.com", "docker"},
	{"kubernetes.io", "kubernetes"},
	{"terraform.io", "terraform"},
	{"ansible.com", "ansible"},

	// Databases
	{"mongodb.com", "mongodb"},
	{"postgresql.org", "postgresql"},
	{"mysql.com", "mysql"},
	{"redis.io", "redis"},
	{"supabase.com", "supabase"},
	{"firebase.google.com", "firebase"},
	{"planetscale.com", "planetscale"},

	// Frameworks & Libraries (docs sites)
	{"reactjs.org", "react"},
	{"react.dev", "react"},
	{"vuejs.org", "vuedotjs"},
	{"angular.io", "angular"},
	{"svelte.dev", "svelte"},
	{"nextjs.org", "nextdotjs"},
	{"nuxt.com", "nuxtdotjs"},
	{"tailwindcss.com", "tailwindcss"},

	// Other Popular Services
	{"calendly.com", "calendly"},
	{"cal.com", "caldotcom"},
	{"1password.com", "1password"},
	{"lastpass.com", "lastpass"},
	{"bitwarden.com", "bitwarden"},
	{"zendesk.com", "zendesk"},
	{"intercom.com", "intercom"},
	{"mailchimp.com", "mailchimp"},
	{"sendgrid.com", "sendgrid"},
	{"twilio.com", "twilio"},
	{"auth0.com", "auth0"},
	{"okta.com", "okta"},
}

var domainIndex = func() map[string]string {
	m := make(map[string]string, len(domainIcons))
	for _, e := range domainIcons {
		if _, ok := m[e.domain]; !ok {
			m[e.domain] = e.icon
		}
	}
	return m
}()

var hostPattern = regexp.MustCompile(`https?://(?:www\.)?([^/]+)`)

// ForURL looks up a brand icon for the URL's host. It tries an exact host
// match, then the last two labels, then a loose scan where any table entry
// whose first label occurs in the host matches. The loose scan is
// imprecise: "localhost" contains "cal" and resolves to the cal.com icon.
// Local addresses otherwise get the Terminal icon.
func ForURL(rawURL string) (Descriptor, bool) {
	host := extractHost(rawURL)

	if icon, ok := domainIndex[host]; ok {
		return domainDescriptor(icon), true
	}

	if labels := strings.Split(host, "."); len(labels) > 2 {
		base := strings.Join(labels[len(labels)-2:], ".")
		if icon, ok := domainIndex[base]; ok {
			return domainDescriptor(icon), true
		}
	}

	if host != "" {
		for _, e := range domainIcons {
			if !strings.Contains(e.domain, ".") {
				continue
			}
			first, _, _ := strings.Cut(e.domain, ".")
			if strings.Contains(host, first) {
				return domainDescriptor(e.icon), true
			}
		}
	}

	if strings.HasPrefix(host, "localhost") || strings.HasPrefix(host, "127.0.0.1") {
		return Descriptor{Kind: KindCatalog, Name: "Terminal"}, true
	}

	return Descriptor{}, false
}

func extractHost(rawURL string) string {
	if u, err := url.Parse(rawURL); err == nil && u.Hostname() != "" {
		return strings.ToLower(strings.TrimPrefix(u.Hostname(), "www."))
	}
	if m := hostPattern.FindStringSubmatch(rawURL); m != nil {
		return strings.ToLower(m[1])
	}
	return ""
}

func domainDescriptor(icon string) Descriptor {
	if strings.HasPrefix(icon, "iconify:") {
		return Resolve(icon)
	}
	return Iconify("simple-icons", icon)
}
