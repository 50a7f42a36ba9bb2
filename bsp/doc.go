// Package bsp creates board support package layers from template trees and
// lists what a tree accepts.
//
// Templates live below a scripts root, one tree per architecture under
// lib/bsp/substrate/target/arch, with a common tree expanded for every
// architecture. [Generator.Create] expands both trees, prompts for (or
// reads from a properties file) the values their inputs declare, and
// writes the layer. [Generator.Properties] and [Generator.PropertyValues]
// describe those inputs for use in properties files.
package bsp
