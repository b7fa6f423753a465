package vulkan

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v3/common"

	"github.com/vkngwrapper/ember/internal/gfx"
)

func nativeError(op string, res common.VkResult, err error) error {
	return gfx.NewNativeError(gfx.APIVulkan, op, int(res), err)
}

// wrongHandle reports an object that was not created by this backend.
func wrongHandle(kind string, v any) error {
	return errors.AssertionFailedf("%s %T was not created by the vulkan backend", kind, v)
}
