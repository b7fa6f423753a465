package gfx

import (
	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
)

// RequiredDeviceExtensions must be supported by every usable device.
var RequiredDeviceExtensions = []string{SwapchainExtension}

// Candidate is a physical device that passed every eligibility check.
type Candidate struct {
	// Index is the position in enumeration order.
	Index      int
	Device     PhysicalDevice
	Families   QueueFamilyIndices
	Support    SwapchainSupport
	Extensions []string
}

// DevicePolicy picks one of the eligible candidates, which are never empty
// and arrive in enumeration order. It returns an index into candidates.
type DevicePolicy func(candidates []Candidate) int

// FirstSuitableDevice selects the first eligible device.
func FirstSuitableDevice(candidates []Candidate) int {
	return 0
}

// FormatPolicy picks the swapchain format out of a non-empty list.
type FormatPolicy func(formats []SurfaceFormat) SurfaceFormat

// FirstSurfaceFormat selects the first reported format.
func FirstSurfaceFormat(formats []SurfaceFormat) SurfaceFormat {
	return formats[0]
}

// FindQueueFamilies walks the families in order, taking each family that can
// do graphics or present for that role, and stops once both are found.
func FindQueueFamilies(families []QueueFamily) QueueFamilyIndices {
	var indices QueueFamilyIndices

	for _, family := range families {
		index := family.Index
		if family.Graphics {
			indices.GraphicsFamily = &index
		}
		if family.Present {
			indices.PresentFamily = &index
		}

		if indices.IsComplete() {
			break
		}
	}

	return indices
}

// CheckDeviceExtensions returns the required extensions missing from available.
func CheckDeviceExtensions(available map[string]struct{}, required []string) []string {
	var missing []string
	for _, name := range required {
		if _, ok := available[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}

// SwapchainAdequate reports whether the surface offers at least one format
// and one present mode.
func SwapchainAdequate(support SwapchainSupport) bool {
	return len(support.Formats) > 0 && len(support.PresentModes) > 0
}

// evaluateDevice runs the eligibility checks on one device. A non-empty
// reason means the device is disqualified. A failed query is an error, not a
// disqualification.
func evaluateDevice(index int, device PhysicalDevice, surface Surface) (Candidate, string, error) {
	candidate := Candidate{Index: index, Device: device}

	families, err := device.QueueFamilies(surface)
	if err != nil {
		return candidate, "", errors.Wrapf(err, "querying queue families of %s", device.Name())
	}
	candidate.Families = FindQueueFamilies(families)
	if candidate.Families.GraphicsFamily == nil {
		return candidate, "no graphics queue family", nil
	}
	if candidate.Families.PresentFamily == nil {
		return candidate, "no present queue family", nil
	}

	available, err := device.Extensions()
	if err != nil {
		return candidate, "", errors.Wrapf(err, "querying extensions of %s", device.Name())
	}
	if missing := CheckDeviceExtensions(available, RequiredDeviceExtensions); len(missing) > 0 {
		return candidate, "missing device extensions", nil
	}
	candidate.Extensions = append([]string(nil), RequiredDeviceExtensions...)
	if _, ok := available[PortabilitySubsetExtension]; ok {
		candidate.Extensions = append(candidate.Extensions, PortabilitySubsetExtension)
	}

	candidate.Support, err = device.SwapchainSupport(surface)
	if err != nil {
		return candidate, "", errors.Wrapf(err, "querying surface support of %s", device.Name())
	}
	if !SwapchainAdequate(candidate.Support) {
		return candidate, "no surface formats or present modes", nil
	}

	return candidate, "", nil
}

// SelectPhysicalDevice evaluates every device against the surface and lets
// policy choose among the eligible ones. A nil policy means
// FirstSuitableDevice. Disqualified devices never reach the policy. A failed
// native query on any device aborts selection with that error.
func SelectPhysicalDevice(devices []PhysicalDevice, surface Surface, policy DevicePolicy) (Candidate, error) {
	if len(devices) == 0 {
		return Candidate{}, errors.Wrap(ErrNoSuitableDevice, "no physical devices enumerated")
	}
	if policy == nil {
		policy = FirstSuitableDevice
	}

	var eligible []Candidate
	for i, device := range devices {
		candidate, reason, err := evaluateDevice(i, device, surface)
		if err != nil {
			return Candidate{}, err
		}
		if reason != "" {
			Logger().WithFields(logrus.Fields{
				"device": i,
				"name":   device.Name(),
				"reason": reason,
			}).Info("skipping physical device")
			continue
		}
		eligible = append(eligible, candidate)
	}

	if len(eligible) == 0 {
		return Candidate{}, errors.Wrapf(ErrNoSuitableDevice, "none of %d physical devices qualify", len(devices))
	}

	chosen := policy(eligible)
	if chosen < 0 || chosen >= len(eligible) {
		return Candidate{}, errors.AssertionFailedf("device policy chose %d of %d candidates", chosen, len(eligible))
	}
	return eligible[chosen], nil
}

// ChoosePresentMode prefers mailbox and otherwise falls back to FIFO, which
// is always available.
func ChoosePresentMode(modes []PresentMode) PresentMode {
	for _, mode := range modes {
		if mode == PresentModeMailbox {
			return mode
		}
	}
	return PresentModeFIFO
}

// ChooseImageCount asks for one image more than the minimum, clamped to the
// maximum when the surface has one.
func ChooseImageCount(caps SurfaceCapabilities) uint32 {
	count := caps.MinImageCount + 1
	if caps.MaxImageCount > 0 && count > caps.MaxImageCount {
		count = caps.MaxImageCount
	}
	return count
}

// ChooseExtent uses the surface's current extent when it is fixed, and
// otherwise clamps the framebuffer size into the surface bounds.
func ChooseExtent(caps SurfaceCapabilities, width, height int) Extent {
	if caps.CurrentExtent.Width != undefinedExtent {
		return caps.CurrentExtent
	}

	return Extent{
		Width:  clamp(width, caps.MinImageExtent.Width, caps.MaxImageExtent.Width),
		Height: clamp(height, caps.MinImageExtent.Height, caps.MaxImageExtent.Height),
	}
}

func clamp(value int, lo, hi uint32) uint32 {
	if value < 0 || uint32(value) < lo {
		return lo
	}
	if uint32(value) > hi {
		return hi
	}
	return uint32(value)
}

// ChooseSharing returns concurrent sharing across both families when they
// differ, and exclusive sharing with no listed families otherwise.
func ChooseSharing(indices QueueFamilyIndices) (SharingMode, []int) {
	if *indices.GraphicsFamily != *indices.PresentFamily {
		return SharingModeConcurrent, []int{*indices.GraphicsFamily, *indices.PresentFamily}
	}
	return SharingModeExclusive, nil
}
