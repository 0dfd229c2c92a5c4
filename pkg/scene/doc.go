// Package scene holds the detections produced by evaluating a detection
// script: named star-convex objects, each with a center, ray distances and
// an integer label. A scene is built once per evaluation and then only read.
package scene
