package web

import (
	"github.com/armviz/armviz/config"
	"github.com/armviz/armviz/input"
	"github.com/armviz/armviz/kinematics"
)

// Message types on the websocket. The shell sends setJoint; the server
// sends hello once on connect and pose on every applied update.
const (
	msgSetJoint = "setJoint"
	msgHello    = "hello"
	msgPose     = "pose"
)

// clientMessage is anything a viewer may send.
type clientMessage struct {
	Type    string  `json:"type"`
	Control string  `json:"control"`
	Value   float64 `json:"value"`
}

// poseMessage carries the complete applied pose: each named node's local
// rotation in radians, plus the five-angle tuple in degrees.
type poseMessage struct {
	Type   string             `json:"type"`
	Joints map[string]float64 `json:"joints"`
	Angles [5]float64         `json:"angles"`
}

// helloMessage bootstraps a viewer: link geometry, control domains, the
// active palette and the current pose.
type helloMessage struct {
	Type     string          `json:"type"`
	Links    []linkGeometry  `json:"links"`
	Controls []input.Control `json:"controls"`
	Palette  config.Palette  `json:"palette"`
	Pose     poseMessage     `json:"pose"`
}

type linkGeometry struct {
	Name   string  `json:"name"`
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func (s *Server) poseMessage() poseMessage {
	current, _ := s.resolver.Current()
	return poseMessage{
		Type:   msgPose,
		Joints: s.chain.Rotations(),
		Angles: kinematics.Resolve(current),
	}
}

func (s *Server) helloMessage() helloMessage {
	names := s.chain.JointNames()
	links := make([]linkGeometry, 0, len(names))
	for i, spec := range s.chain.Links() {
		links = append(links, linkGeometry{
			Name:   names[i],
			Length: spec.Length,
			Width:  spec.Width,
			Height: spec.Height,
		})
	}
	return helloMessage{
		Type:     msgHello,
		Links:    links,
		Controls: s.surface.Controls(),
		Palette:  s.palette,
		Pose:     s.poseMessage(),
	}
}
