package classify

// Entry is one taxonomy record: the rtk equivalent for a raw command, its
// category, and the observed or assumed percentage reduction in output
// volume rtk achieves for that command class.
type Entry struct {
	Equivalent string
	Category   string
	SavingsPct float64
	Status     Status
}

// registry maps base commands (and base+subcommand pairs for multi-word
// tools) to taxonomy entries. Two-token keys take precedence over one-token
// keys during matching. Built once; never mutated.
var registry = map[string]Entry{
	// Version control. The git filters are the oldest and best-tuned.
	"git status":   {Equivalent: "rtk git status", Category: "vcs", SavingsPct: 80, Status: StatusExisting},
	"git diff":     {Equivalent: "rtk git diff", Category: "vcs", SavingsPct: 70, Status: StatusExisting},
	"git log":      {Equivalent: "rtk git log", Category: "vcs", SavingsPct: 85, Status: StatusExisting},
	"git show":     {Equivalent: "rtk git show", Category: "vcs", SavingsPct: 70, Status: StatusExisting},
	"git branch":   {Equivalent: "rtk git branch", Category: "vcs", SavingsPct: 50, Status: StatusExisting},
	"git stash":    {Equivalent: "rtk git stash", Category: "vcs", SavingsPct: 40, Status: StatusPassthrough},
	"git add":      {Equivalent: "rtk git add", Category: "vcs", SavingsPct: 20, Status: StatusPassthrough},
	"git commit":   {Equivalent: "rtk git commit", Category: "vcs", SavingsPct: 60, Status: StatusExisting},
	"git push":     {Equivalent: "rtk git push", Category: "vcs", SavingsPct: 55, Status: StatusExisting},
	"git pull":     {Equivalent: "rtk git pull", Category: "vcs", SavingsPct: 55, Status: StatusExisting},
	"git checkout": {Equivalent: "rtk git checkout", Category: "vcs", SavingsPct: 30, Status: StatusPassthrough},
	"git blame":    {Equivalent: "rtk git blame", Category: "vcs", SavingsPct: 60, Status: StatusNotSupported},

	// File inspection.
	"ls":   {Equivalent: "rtk ls", Category: "files", SavingsPct: 60, Status: StatusExisting},
	"cat":  {Equivalent: "rtk read", Category: "files", SavingsPct: 40, Status: StatusExisting},
	"head": {Equivalent: "rtk read", Category: "files", SavingsPct: 25, Status: StatusPassthrough},
	"tail": {Equivalent: "rtk read", Category: "files", SavingsPct: 25, Status: StatusPassthrough},
	"tree": {Equivalent: "rtk tree", Category: "files", SavingsPct: 85, Status: StatusExisting},
	"wc":   {Equivalent: "rtk count", Category: "files", SavingsPct: 10, Status: StatusPassthrough},
	"du":   {Equivalent: "rtk du", Category: "files", SavingsPct: 50, Status: StatusNotSupported},

	// Search.
	"grep": {Equivalent: "rtk grep", Category: "search", SavingsPct: 75, Status: StatusExisting},
	"rg":   {Equivalent: "rtk grep", Category: "search", SavingsPct: 75, Status: StatusExisting},
	"find": {Equivalent: "rtk find", Category: "search", SavingsPct: 70, Status: StatusExisting},
	"fd":   {Equivalent: "rtk find", Category: "search", SavingsPct: 70, Status: StatusExisting},

	// Test runners produce the bulk of wasted output.
	"go test":    {Equivalent: "rtk test go", Category: "test", SavingsPct: 85, Status: StatusExisting},
	"cargo test": {Equivalent: "rtk test cargo", Category: "test", SavingsPct: 85, Status: StatusExisting},
	"npm test":   {Equivalent: "rtk test npm", Category: "test", SavingsPct: 80, Status: StatusExisting},
	"pytest":     {Equivalent: "rtk test pytest", Category: "test", SavingsPct: 85, Status: StatusExisting},
	"jest":       {Equivalent: "rtk test jest", Category: "test", SavingsPct: 80, Status: StatusNotSupported},
	"vitest":     {Equivalent: "rtk test vitest", Category: "test", SavingsPct: 80, Status: StatusNotSupported},

	// Builds.
	"go build":    {Equivalent: "rtk build go", Category: "build", SavingsPct: 90, Status: StatusExisting},
	"cargo build": {Equivalent: "rtk build cargo", Category: "build", SavingsPct: 90, Status: StatusExisting},
	"make":        {Equivalent: "rtk build make", Category: "build", SavingsPct: 85, Status: StatusExisting},
	"tsc":         {Equivalent: "rtk build tsc", Category: "build", SavingsPct: 85, Status: StatusExisting},
	"npm run":     {Equivalent: "rtk run npm", Category: "build", SavingsPct: 60, Status: StatusExisting},
	"mvn":         {Equivalent: "rtk build mvn", Category: "build", SavingsPct: 85, Status: StatusNotSupported},
	"gradle":      {Equivalent: "rtk build gradle", Category: "build", SavingsPct: 85, Status: StatusNotSupported},

	// Linters.
	"go vet":       {Equivalent: "rtk lint go", Category: "lint", SavingsPct: 80, Status: StatusExisting},
	"cargo clippy": {Equivalent: "rtk lint cargo", Category: "lint", SavingsPct: 85, Status: StatusExisting},
	"eslint":       {Equivalent: "rtk lint eslint", Category: "lint", SavingsPct: 80, Status: StatusExisting},
	"ruff":         {Equivalent: "rtk lint ruff", Category: "lint", SavingsPct: 80, Status: StatusExisting},
	"golangci-lint": {
		Equivalent: "rtk lint golangci", Category: "lint", SavingsPct: 80, Status: StatusNotSupported,
	},

	// Package managers.
	"npm install":  {Equivalent: "rtk pkg npm", Category: "packages", SavingsPct: 90, Status: StatusExisting},
	"pnpm install": {Equivalent: "rtk pkg pnpm", Category: "packages", SavingsPct: 90, Status: StatusExisting},
	"yarn install": {Equivalent: "rtk pkg yarn", Category: "packages", SavingsPct: 90, Status: StatusExisting},
	"pip install":  {Equivalent: "rtk pkg pip", Category: "packages", SavingsPct: 85, Status: StatusExisting},
	"pip3 install": {Equivalent: "rtk pkg pip", Category: "packages", SavingsPct: 85, Status: StatusExisting},
	"cargo add":    {Equivalent: "rtk pkg cargo", Category: "packages", SavingsPct: 70, Status: StatusPassthrough},
	"go get":       {Equivalent: "rtk pkg go", Category: "packages", SavingsPct: 70, Status: StatusPassthrough},
	"brew install": {Equivalent: "rtk pkg brew", Category: "packages", SavingsPct: 85, Status: StatusNotSupported},

	// Containers and cluster tooling.
	"docker ps":      {Equivalent: "rtk docker ps", Category: "containers", SavingsPct: 60, Status: StatusExisting},
	"docker build":   {Equivalent: "rtk build docker", Category: "build", SavingsPct: 90, Status: StatusExisting},
	"docker logs":    {Equivalent: "rtk logs", Category: "logs", SavingsPct: 85, Status: StatusExisting},
	"docker compose": {Equivalent: "rtk docker compose", Category: "containers", SavingsPct: 70, Status: StatusNotSupported},
	"kubectl get":    {Equivalent: "rtk k8s get", Category: "containers", SavingsPct: 70, Status: StatusExisting},
	"kubectl logs":   {Equivalent: "rtk logs", Category: "logs", SavingsPct: 85, Status: StatusExisting},
	"kubectl describe": {
		Equivalent: "rtk k8s describe", Category: "containers", SavingsPct: 75, Status: StatusNotSupported,
	},

	// Network and data plumbing.
	"curl": {Equivalent: "rtk http", Category: "network", SavingsPct: 50, Status: StatusExisting},
	"wget": {Equivalent: "rtk http", Category: "network", SavingsPct: 50, Status: StatusNotSupported},
	"jq":   {Equivalent: "rtk json", Category: "json", SavingsPct: 40, Status: StatusExisting},
}

// noiseCommands are commands with negligible output that would only pollute
// the unsupported ranking: shell builtins, navigation, trivial utilities.
// They classify as Ignored.
var noiseCommands = map[string]struct{}{
	"cd":      {},
	"echo":    {},
	"pwd":     {},
	"export":  {},
	"source":  {},
	"alias":   {},
	"unalias": {},
	"set":     {},
	"unset":   {},
	"which":   {},
	"exit":    {},
	"true":    {},
	"false":   {},
	"sleep":   {},
	"clear":   {},
	"mkdir":   {},
	"touch":   {},
}
