// Copyright (C) 2026 Fossilize Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package state

import (
	vk "github.com/vulkan-go/vulkan"

	"github.com/DuckSoft/Fossilize/core/hash"
	"github.com/DuckSoft/Fossilize/core/memory/arena"
)

// AttachmentReference mirrors VkAttachmentReference: {index, layout}.
type AttachmentReference struct {
	Attachment uint32
	Layout     vk.ImageLayout
}

// Subpass mirrors VkSubpassDescription. ResolveAttachments is nil when
// pResolveAttachments was absent or empty (the copy does not keep an empty
// slice distinct from nil); in that case the hash function omits it
// entirely rather than feeding zeros (§4.3).
type Subpass struct {
	Flags                   vk.SubpassDescriptionFlags
	PipelineBindPoint       vk.PipelineBindPoint
	InputAttachments        []AttachmentReference
	ColorAttachments        []AttachmentReference
	ResolveAttachments      []AttachmentReference // nil if absent
	DepthStencilAttachment  *AttachmentReference   // nil if absent
	PreserveAttachmentIndex []uint32
}

// RenderPass is the creation-time state of a VkRenderPass.
type RenderPass struct {
	Flags        vk.RenderPassCreateFlags
	Attachments  []vk.AttachmentDescription
	Dependencies []vk.SubpassDependency
	Subpasses    []Subpass
}

func attachmentRefsFromVK(a *arena.Arena, refs []vk.AttachmentReference) []AttachmentReference {
	if refs == nil {
		return nil
	}
	out := make([]AttachmentReference, len(refs))
	for i, r := range refs {
		out[i] = AttachmentReference{Attachment: r.Attachment, Layout: r.Layout}
	}
	return arena.Slice(a, out)
}

// RenderPassFromVK deep-copies a VkRenderPassCreateInfo, including every
// subpass's nested attachment arrays.
func RenderPassFromVK(a *arena.Arena, info *vk.RenderPassCreateInfo) (*RenderPass, error) {
	if info.PNext != nil {
		return nil, errUnsupportedExtension("renderPass")
	}
	subpasses := make([]Subpass, len(info.PSubpasses))
	for i, sp := range info.PSubpasses {
		s := Subpass{
			Flags:              sp.Flags,
			PipelineBindPoint:  sp.PipelineBindPoint,
			InputAttachments:   attachmentRefsFromVK(a, sp.PInputAttachments),
			ColorAttachments:   attachmentRefsFromVK(a, sp.PColorAttachments),
			ResolveAttachments: attachmentRefsFromVK(a, sp.PResolveAttachments),
			PreserveAttachmentIndex: arena.Slice(a, sp.PPreserveAttachments),
		}
		if sp.PDepthStencilAttachment != nil {
			ds := arena.Allocate[AttachmentReference](a)
			*ds = AttachmentReference{
				Attachment: sp.PDepthStencilAttachment.Attachment,
				Layout:     sp.PDepthStencilAttachment.Layout,
			}
			s.DepthStencilAttachment = ds
		}
		subpasses[i] = s
	}
	rp := arena.Allocate[RenderPass](a)
	*rp = RenderPass{
		Flags:        info.Flags,
		Attachments:  arena.Slice(a, info.PAttachments),
		Dependencies: arena.Slice(a, info.PDependencies),
		Subpasses:    arena.Slice(a, subpasses),
	}
	return rp, nil
}

// Hash feeds {attachmentCount, dependencyCount, subpassCount}, each
// attachment, each dependency, then each subpass.
func (rp *RenderPass) Hash(_ Resolver) (hash.Hash, error) {
	h := hash.New()
	h.U32(uint32(len(rp.Attachments)))
	h.U32(uint32(len(rp.Dependencies)))
	h.U32(uint32(len(rp.Subpasses)))
	for _, at := range rp.Attachments {
		h.U32(uint32(at.Flags))
		h.U32(uint32(at.Format))
		h.U32(uint32(at.Samples))
		h.U32(uint32(at.LoadOp))
		h.U32(uint32(at.StoreOp))
		h.U32(uint32(at.StencilLoadOp))
		h.U32(uint32(at.StencilStoreOp))
		h.U32(uint32(at.InitialLayout))
		h.U32(uint32(at.FinalLayout))
	}
	for _, dep := range rp.Dependencies {
		h.U32(dep.SrcSubpass)
		h.U32(dep.DstSubpass)
		h.U32(uint32(dep.SrcStageMask))
		h.U32(uint32(dep.DstStageMask))
		h.U32(uint32(dep.SrcAccessMask))
		h.U32(uint32(dep.DstAccessMask))
		h.U32(uint32(dep.DependencyFlags))
	}
	for _, sp := range rp.Subpasses {
		hashSubpass(h, &sp)
	}
	return h.Sum(), nil
}

// hashSubpass feeds {flags, colorAttachmentCount, inputAttachmentCount,
// preserveAttachmentCount, bindPoint}, then preserve indices, then color
// refs, then input refs, then resolve refs (only if present — omitted
// entirely, not replaced by u32(0)*N, when pResolveAttachments is absent),
// then the depth-stencil ref or u32(0).
func hashSubpass(h *hash.Hasher, sp *Subpass) {
	h.U32(uint32(sp.Flags))
	h.U32(uint32(len(sp.ColorAttachments)))
	h.U32(uint32(len(sp.InputAttachments)))
	h.U32(uint32(len(sp.PreserveAttachmentIndex)))
	h.U32(uint32(sp.PipelineBindPoint))
	for _, idx := range sp.PreserveAttachmentIndex {
		h.U32(idx)
	}
	hashAttachmentRefs(h, sp.ColorAttachments)
	hashAttachmentRefs(h, sp.InputAttachments)
	if sp.ResolveAttachments != nil {
		hashAttachmentRefs(h, sp.ResolveAttachments)
	}
	if sp.DepthStencilAttachment != nil {
		h.U32(sp.DepthStencilAttachment.Attachment)
		h.U32(uint32(sp.DepthStencilAttachment.Layout))
	} else {
		h.U32(0)
	}
}

func hashAttachmentRefs(h *hash.Hasher, refs []AttachmentReference) {
	for _, r := range refs {
		h.U32(r.Attachment)
		h.U32(uint32(r.Layout))
	}
}

// Kind identifies this descriptor's entity type.
func (rp *RenderPass) Kind() Kind { return KindRenderPass }

// Remap is a no-op: a render pass has no cross-object reference fields.
func (rp *RenderPass) Remap(Resolver) error { return nil }
