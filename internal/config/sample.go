package config

// Sample returns the commented configuration template written by
// `sunwatch init`. It must stay parseable into a valid Config; a test
// enforces that.
func Sample() string {
	return `# sunwatch configuration.
#
# Every value can be overridden with a SUNWATCH_-prefixed environment
# variable, e.g. SUNWATCH_EVENT=dawn or SUNWATCH_LOCATION_LATITUDE=48.14.

location:
  name: Hamburg
  region: Germany
  timezone: Europe/Berlin
  latitude: 53.55
  longitude: 9.99

# Event driving command selection: dawn, sunrise, noon, sunset, or dusk.
event: sunset

# Directory holding captured frames; collect-images reads from here and
# resolves relative --target paths against it.
source_dir: /data/camera

# Ordered rules mapping the offset-from-event (in hours, negative before the
# event) to shell commands. Bounds are inclusive; omit one to leave that side
# open. Every matching rule fires, in order.
rules:
  - min: -0.75
    max: 0.75
    run: "fswebcam --set brightness=60% -r 1280x720 $(date +%s)+0.jpg"
  - max: -0.75
    run: "echo too early"
`
}
