package osmgraph

// campusXML a small extract: a footway Hut Cafe - junction - Library, a
// service road to REC Cafe, a private path and a motorway that must be ignored
const campusXML = `<?xml version="1.0" encoding="UTF-8"?>
<osm version="0.6" generator="Overpass API">
  <node id="1" lat="13.0084" lon="80.0036"><tag k="name" v="Hut Cafe"/></node>
  <node id="2" lat="13.0087" lon="80.0045"/>
  <node id="3" lat="13.0090" lon="80.0055"><tag k="name" v="Library"/></node>
  <node id="4" lat="13.0086" lon="80.0026"/>
  <node id="5" lat="13.0080" lon="80.0030"/>
  <node id="6" lat="13.0070" lon="80.0030"/>
  <node id="7" lat="13.0070" lon="80.0060"/>
  <way id="100">
    <nd ref="1"/>
    <nd ref="2"/>
    <nd ref="3"/>
    <tag k="highway" v="footway"/>
    <tag k="name" v="Library Walk"/>
  </way>
  <way id="101">
    <nd ref="4"/>
    <nd ref="1"/>
    <tag k="highway" v="service"/>
  </way>
  <way id="102">
    <nd ref="5"/>
    <nd ref="4"/>
    <tag k="highway" v="path"/>
    <tag k="access" v="private"/>
  </way>
  <way id="103">
    <nd ref="6"/>
    <nd ref="7"/>
    <tag k="highway" v="motorway"/>
  </way>
</osm>`
